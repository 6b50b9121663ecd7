package alerts

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List recomputes alerts on every call; the dashboard polls this.
func (h *Handler) List(c *gin.Context) {
	alerts, err := h.service.Evaluate(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to evaluate alerts"})
		return
	}

	if alerts == nil {
		alerts = []Alert{}
	}
	c.JSON(http.StatusOK, alerts)
}
