package forecast

import (
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

func (h *Handler) PutSeries(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var points []Point
	if err := c.ShouldBindJSON(&points); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.UpsertSeries(c.Request.Context(), id, points); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "forecast updated", "points": len(points)})
}

func (h *Handler) GetSeries(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	points, err := h.service.Series(c.Request.Context(), id, queryDays(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load forecast"})
		return
	}

	if points == nil {
		points = []Point{}
	}
	c.JSON(http.StatusOK, points)
}

// Chart serves the series as a standalone SVG, usable directly in an <img>.
func (h *Handler) Chart(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	svg, err := h.service.Chart(c.Request.Context(), id, queryDays(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render chart"})
		return
	}

	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func queryDays(c *gin.Context) int {
	days, err := strconv.Atoi(c.DefaultQuery("days", "0"))
	if err != nil {
		return 0
	}
	return days
}
