package inventory

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

type ingredientRequest struct {
	Name         string  `json:"name"`
	StockQty     float64 `json:"stock_qty"`
	StockUnit    string  `json:"stock_unit"`
	UnitCost     float64 `json:"unit_cost"`
	ReorderLevel float64 `json:"reorder_level"`
	LeadTimeDays int     `json:"lead_time_days"`
}

func (req *ingredientRequest) toIngredient() *Ingredient {
	return &Ingredient{
		Name:         req.Name,
		StockQty:     req.StockQty,
		StockUnit:    req.StockUnit,
		UnitCost:     req.UnitCost,
		ReorderLevel: req.ReorderLevel,
		LeadTimeDays: req.LeadTimeDays,
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ing := req.toIngredient()
	if err := h.service.Create(c.Request.Context(), ing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ing)
}

func (h *Handler) List(c *gin.Context) {
	ings, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list ingredients"})
		return
	}

	if ings == nil {
		ings = []Ingredient{}
	}
	c.JSON(http.StatusOK, ings)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ing, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ing := req.toIngredient()
	ing.ID = id

	if err := h.service.Update(c.Request.Context(), ing); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ing)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ingredient deleted"})
}

// --------------------------------------------------
// Stock adjustment
// --------------------------------------------------

type adjustRequest struct {
	Delta float64 `json:"delta"`
	Unit  string  `json:"unit"`
}

func (h *Handler) Adjust(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ing, err := h.service.Adjust(c.Request.Context(), id, req.Delta, req.Unit)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
			return
		}
		if errors.Is(err, ErrInsufficientStock) {
			c.JSON(http.StatusConflict, gin.H{"error": ErrInsufficientStock.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ing)
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
