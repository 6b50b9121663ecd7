package chat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupChatRouter(model Model) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewAssistant(NewMemoryStore(), model, nil))

	r := gin.New()
	r.POST("/api/chat", h.Send)
	r.GET("/api/chat/history/:sessionID", h.History)
	r.DELETE("/api/chat/history/:sessionID", h.ClearHistory)
	return r
}

func postChat(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestChatEndpoint(t *testing.T) {
	router := setupChatRouter(&fakeModel{reply: "Happy to help!"})

	w := postChat(t, router, chatRequest{SessionID: "table-4", Message: "Hi"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var reply Message
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("failed to parse reply: %v", err)
	}
	if reply.Content != "Happy to help!" {
		t.Errorf("unexpected reply: %q", reply.Content)
	}
	if reply.SessionID != "table-4" {
		t.Errorf("expected session id preserved, got %q", reply.SessionID)
	}
}

func TestChatEndpointRequiresMessage(t *testing.T) {
	router := setupChatRouter(&fakeModel{reply: "ok"})

	w := postChat(t, router, gin.H{"session_id": "table-4"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestChatEndpointWithoutModel(t *testing.T) {
	router := setupChatRouter(nil)

	w := postChat(t, router, chatRequest{Message: "Hi"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
}

func TestChatHistoryEndpoints(t *testing.T) {
	router := setupChatRouter(&fakeModel{reply: "ok"})

	postChat(t, router, chatRequest{SessionID: "table-4", Message: "Hi"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chat/history/table-4", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var history []Message
	if err := json.Unmarshal(w.Body.Bytes(), &history); err != nil {
		t.Fatalf("failed to parse history: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("expected 2 messages, got %d", len(history))
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/chat/history/table-4", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/chat/history/table-4", nil)
	router.ServeHTTP(w, req)
	if body := w.Body.String(); body != "[]" {
		t.Errorf("expected empty history after clear, got %s", body)
	}
}
