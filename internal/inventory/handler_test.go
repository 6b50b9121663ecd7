package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/units"

	"github.com/gin-gonic/gin"
)

func setupInventoryTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handler := NewHandler(NewService(NewInMemoryRepository(), units.DefaultTable()))

	r.POST("/api/ingredients", handler.Create)
	r.GET("/api/ingredients", handler.List)
	r.GET("/api/ingredients/:id", handler.Get)
	r.PUT("/api/ingredients/:id", handler.Update)
	r.DELETE("/api/ingredients/:id", handler.Delete)
	r.POST("/api/ingredients/:id/adjust", handler.Adjust)

	return r
}

func doJSON(r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createIngredient(t *testing.T, r *gin.Engine, payload map[string]any) Ingredient {
	t.Helper()

	w := doJSON(r, "POST", "/api/ingredients", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var ing Ingredient
	if err := json.Unmarshal(w.Body.Bytes(), &ing); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return ing
}

func TestCreateIngredient(t *testing.T) {
	r := setupInventoryTestRouter()

	ing := createIngredient(t, r, map[string]any{
		"name":           "Chicken Breast",
		"stock_qty":      5000.0,
		"stock_unit":     "g",
		"unit_cost":      0.012,
		"reorder_level":  1000.0,
		"lead_time_days": 2,
	})

	if ing.ID == 0 {
		t.Fatal("expected an assigned id")
	}
}

func TestCreateIngredientUnknownUnit(t *testing.T) {
	r := setupInventoryTestRouter()

	w := doJSON(r, "POST", "/api/ingredients", map[string]any{
		"name":       "Mystery",
		"stock_qty":  10.0,
		"stock_unit": "handful",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAdjustStockSameUnit(t *testing.T) {
	r := setupInventoryTestRouter()

	ing := createIngredient(t, r, map[string]any{
		"name": "Rice", "stock_qty": 1000.0, "stock_unit": "g",
	})

	w := doJSON(r, "POST", fmt.Sprintf("/api/ingredients/%d/adjust", ing.ID), map[string]any{
		"delta": -250.0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated Ingredient
	json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.StockQty != 750.0 {
		t.Fatalf("expected 750, got %v", updated.StockQty)
	}
}

func TestAdjustStockConvertsUnit(t *testing.T) {
	r := setupInventoryTestRouter()

	ing := createIngredient(t, r, map[string]any{
		"name": "Flour", "stock_qty": 500.0, "stock_unit": "g",
	})

	// +2 kg on a gram-tracked ingredient
	w := doJSON(r, "POST", fmt.Sprintf("/api/ingredients/%d/adjust", ing.ID), map[string]any{
		"delta": 2.0,
		"unit":  "kg",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated Ingredient
	json.Unmarshal(w.Body.Bytes(), &updated)
	if math.Abs(updated.StockQty-2500.0) > 1e-9 {
		t.Fatalf("expected 2500, got %v", updated.StockQty)
	}
}

func TestAdjustStockInsufficient(t *testing.T) {
	r := setupInventoryTestRouter()

	ing := createIngredient(t, r, map[string]any{
		"name": "Saffron", "stock_qty": 10.0, "stock_unit": "g",
	})

	w := doJSON(r, "POST", fmt.Sprintf("/api/ingredients/%d/adjust", ing.ID), map[string]any{
		"delta": -50.0,
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdjustStockCrossDimension(t *testing.T) {
	r := setupInventoryTestRouter()

	ing := createIngredient(t, r, map[string]any{
		"name": "Milk", "stock_qty": 2000.0, "stock_unit": "ml",
	})

	w := doJSON(r, "POST", fmt.Sprintf("/api/ingredients/%d/adjust", ing.ID), map[string]any{
		"delta": 1.0,
		"unit":  "kg",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdjustMissingIngredient(t *testing.T) {
	r := setupInventoryTestRouter()

	w := doJSON(r, "POST", "/api/ingredients/99/adjust", map[string]any{"delta": 1.0})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
