package chat

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// --------------------------------------------------
// HTTP handlers
// --------------------------------------------------

type Handler struct {
	assistant *Assistant
}

func NewHandler(assistant *Assistant) *Handler {
	return &Handler{assistant: assistant}
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

// Send handles POST /api/chat
func (h *Handler) Send(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	reply, err := h.assistant.Ask(c.Request.Context(), strings.TrimSpace(req.SessionID), req.Message)
	if err != nil {
		if errors.Is(err, ErrAssistantUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		log.Printf("⚠️  Chat request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, reply)
}

// History handles GET /api/chat/history/:sessionID
func (h *Handler) History(c *gin.Context) {
	sessionID := c.Param("sessionID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	msgs, err := h.assistant.History(c.Request.Context(), sessionID, limit)
	if err != nil {
		log.Printf("⚠️  Failed to load chat history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if msgs == nil {
		msgs = []Message{}
	}
	c.JSON(http.StatusOK, msgs)
}

// ClearHistory handles DELETE /api/chat/history/:sessionID
func (h *Handler) ClearHistory(c *gin.Context) {
	if err := h.assistant.Clear(c.Request.Context(), c.Param("sessionID")); err != nil {
		log.Printf("⚠️  Failed to clear chat history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "chat history cleared"})
}
