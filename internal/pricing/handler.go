package pricing

import (
	"errors"
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

// List handles GET /api/pricing/recommendations. refresh=1 skips the
// cache and recomputes.
func (h *Handler) List(c *gin.Context) {
	var (
		recs []Recommendation
		err  error
	)
	if c.Query("refresh") == "1" {
		recs, err = h.service.Refresh(c.Request.Context())
	} else {
		recs, err = h.service.Recommendations(c.Request.Context())
	}
	if err != nil {
		logger.Error().Err(err).Msg("Error computing pricing recommendations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if recs == nil {
		recs = []Recommendation{}
	}
	c.JSON(http.StatusOK, recs)
}

// Get handles GET /api/pricing/recommendations/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	rec, err := h.service.RecommendationFor(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no recommendation for menu item"})
			return
		}
		logger.Error().Err(err).Msg("Error computing pricing recommendation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, rec)
}
