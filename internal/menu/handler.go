package menu

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type itemRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Available   *bool   `json:"available"`
}

func (req *itemRequest) toItem() *MenuItem {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	return &MenuItem{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Available:   available,
	}
}

// --------------------------------------------------
// Back-office CRUD
// --------------------------------------------------

func (h *Handler) Create(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item := req.toItem()
	if err := h.service.Create(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list menu items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondNotFoundOr500(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item := req.toItem()
	item.ID = id

	err := h.service.Update(c.Request.Context(), item)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondNotFoundOr500(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu item deleted"})
}

// --------------------------------------------------
// Item photo upload
// --------------------------------------------------

func (h *Handler) UploadImage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	defer file.Close()

	if err := ValidateImageExtension(header.Filename); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.service.UploadImage(c.Request.Context(), id, file, header)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
			return
		}
		if errors.Is(err, ErrStorageDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": ErrStorageDisabled.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

// --------------------------------------------------
// Recipes
// --------------------------------------------------

func (h *Handler) PutRecipe(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var lines []RecipeLine
	if err := c.ShouldBindJSON(&lines); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.service.ReplaceRecipe(c.Request.Context(), id, lines)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe updated", "lines": len(lines)})
}

func (h *Handler) GetRecipe(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	lines, err := h.service.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondNotFoundOr500(c, err)
		return
	}

	if lines == nil {
		lines = []RecipeLine{}
	}
	c.JSON(http.StatusOK, lines)
}

// --------------------------------------------------
// Public ordering menu
// --------------------------------------------------

func (h *Handler) PublicMenu(c *gin.Context) {
	items, err := h.service.PublicMenu(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load menu"})
		return
	}

	if items == nil {
		items = []MenuItem{}
	}
	c.JSON(http.StatusOK, items)
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func respondNotFoundOr500(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
