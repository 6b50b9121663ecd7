package orders

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupOrderRouter(t *testing.T) (*gin.Engine, *MemoryRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, repo, _ := newOrderFixture()
	h := NewHandler(svc)

	r := gin.New()
	r.POST("/api/orders", h.Create)
	r.GET("/api/orders", h.List)
	r.GET("/api/orders/:id", h.Get)
	r.PATCH("/api/orders/:id/status", h.UpdateStatus)
	r.POST("/api/orders/:id/cancel", h.Cancel)
	return r, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func createTestOrder(t *testing.T, router *gin.Engine) Order {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/orders", createOrderRequest{
		CustomerName: "Asha",
		Items:        []Line{{MenuItemID: 1, Quantity: 2}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var order Order
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatalf("failed to parse order: %v", err)
	}
	return order
}

func TestCreateOrderEndpoint(t *testing.T) {
	router, repo := setupOrderRouter(t)

	order := createTestOrder(t, router)
	if order.Reference == "" {
		t.Error("expected a reference in the response")
	}
	if order.Total != 14.00 {
		t.Errorf("expected total 14.00, got %v", order.Total)
	}
	if got := repo.StockQty(10); got != 600 {
		t.Errorf("expected 600 g of chicken left, got %v", got)
	}
}

func TestCreateOrderEndpointRejectsBadRequests(t *testing.T) {
	router, _ := setupOrderRouter(t)

	t.Run("no items", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/orders", gin.H{"customer_name": "Asha"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown menu item", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/orders", createOrderRequest{
			Items: []Line{{MenuItemID: 99, Quantity: 1}},
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("insufficient stock", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/orders", createOrderRequest{
			Items: []Line{{MenuItemID: 1, Quantity: 10}},
		})
		if w.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestOrderStatusEndpoint(t *testing.T) {
	router, _ := setupOrderRouter(t)
	order := createTestOrder(t, router)
	path := "/api/orders/" + itoa(order.ID) + "/status"

	w := doJSON(t, router, http.MethodPatch, path, statusRequest{Status: StatusPreparing})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated Order
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to parse order: %v", err)
	}
	if updated.Status != StatusPreparing {
		t.Errorf("expected preparing, got %q", updated.Status)
	}

	w = doJSON(t, router, http.MethodPatch, path, statusRequest{Status: "bogus"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bogus status, got %d", w.Code)
	}

	doJSON(t, router, http.MethodPatch, path, statusRequest{Status: StatusCompleted})
	w = doJSON(t, router, http.MethodPatch, path, statusRequest{Status: StatusPreparing})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 leaving completed, got %d", w.Code)
	}
}

func TestCancelOrderEndpoint(t *testing.T) {
	router, repo := setupOrderRouter(t)
	order := createTestOrder(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/orders/"+itoa(order.ID)+"/cancel", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := repo.StockQty(10); got != 1000 {
		t.Errorf("expected stock restored, got %v", got)
	}
}

func TestGetOrderEndpoint(t *testing.T) {
	router, _ := setupOrderRouter(t)
	order := createTestOrder(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/orders/"+itoa(order.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/orders/999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestListOrdersEndpoint(t *testing.T) {
	router, _ := setupOrderRouter(t)
	createTestOrder(t, router)
	createTestOrder(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/orders", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var list []Order
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to parse list: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 orders, got %d", len(list))
	}

	w = doJSON(t, router, http.MethodGet, "/api/orders?status=completed", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != "[]" {
		t.Errorf("expected empty array, got %s", body)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
