package nutrition

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// --------------------------------------------------
// HTTP handlers
// --------------------------------------------------

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type factsRequest struct {
	ServingSize string   `json:"serving_size"`
	Calories    float64  `json:"calories"`
	ProteinG    float64  `json:"protein_g"`
	CarbsG      float64  `json:"carbs_g"`
	FatG        float64  `json:"fat_g"`
	SodiumMg    float64  `json:"sodium_mg"`
	Ingredients []string `json:"ingredients"`
	Analysis    string   `json:"analysis"`
}

// Put handles PUT /api/menu-items/:id/nutrition
func (h *Handler) Put(c *gin.Context) {
	id, ok := menuItemID(c)
	if !ok {
		return
	}

	var req factsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	saved, err := h.service.Save(c.Request.Context(), id, Facts{
		ServingSize: req.ServingSize,
		Calories:    req.Calories,
		ProteinG:    req.ProteinG,
		CarbsG:      req.CarbsG,
		FatG:        req.FatG,
		SodiumMg:    req.SodiumMg,
		Ingredients: req.Ingredients,
		Analysis:    req.Analysis,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrMenuItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Get handles GET /api/menu-items/:id/nutrition
func (h *Handler) Get(c *gin.Context) {
	id, ok := menuItemID(c)
	if !ok {
		return
	}

	facts, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("⚠️  Failed to load nutrition facts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, facts)
}

// Delete handles DELETE /api/menu-items/:id/nutrition
func (h *Handler) Delete(c *gin.Context) {
	id, ok := menuItemID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("⚠️  Failed to delete nutrition facts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "nutrition facts deleted"})
}

func menuItemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
