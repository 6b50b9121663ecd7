package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/nutrition"
)

// --------------------------------------------------
// Fakes
// --------------------------------------------------

type fakeClient struct {
	analysisReply string
	image         *GeneratedImage
	err           error
	lastOpts      AnalysisOptions
}

func (f *fakeClient) AnalyzeImage(ctx context.Context, image []byte, mimeType string, opts AnalysisOptions) (string, error) {
	f.lastOpts = opts
	if f.err != nil {
		return "", f.err
	}
	return f.analysisReply, nil
}

func (f *fakeClient) GenerateImage(ctx context.Context, dishName string) (*GeneratedImage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.image, nil
}

const recipeJSON = `{
	"serving_size": "1 bowl (350g)",
	"calories": 620,
	"protein_g": 32,
	"carbs_g": 48,
	"fat_g": 30,
	"sodium_mg": 980,
	"ingredients": ["chicken", "butter"],
	"analysis": "A rich curry."
}`

func setupVisionRouter(client Client, facts NutritionSaver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(client, facts)

	r := gin.New()
	r.POST("/api/analyze-image", h.AnalyzeImage)
	r.POST("/api/generate-food-image", h.GenerateImage)
	return r
}

// postImage uploads a small fake JPEG with optional extra form fields.
func postImage(t *testing.T, router *gin.Engine, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "dish.jpg")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte("fake-jpeg-bytes")); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field %s: %v", k, err)
		}
	}
	mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	router.ServeHTTP(w, req)
	return w
}

// --------------------------------------------------
// Tests
// --------------------------------------------------

func TestAnalyzeImageEndpoint(t *testing.T) {
	client := &fakeClient{analysisReply: recipeJSON}
	router := setupVisionRouter(client, nil)

	w := postImage(t, router, map[string]string{
		"menuItemName":   "Butter Chicken",
		"keyIngredients": "chicken, butter",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Analysis      string      `json:"analysis"`
		HasRecipeData bool        `json:"hasRecipeData"`
		RecipeData    *RecipeData `json:"recipeData"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !resp.HasRecipeData {
		t.Fatal("expected recipe data to be extracted")
	}
	if resp.RecipeData.Calories != 620 {
		t.Errorf("expected 620 calories, got %v", resp.RecipeData.Calories)
	}
	if resp.Analysis != "A rich curry." {
		t.Errorf("unexpected analysis: %q", resp.Analysis)
	}
	if client.lastOpts.MenuItemName != "Butter Chicken" {
		t.Errorf("expected dish name forwarded, got %q", client.lastOpts.MenuItemName)
	}
}

func TestAnalyzeImageSavesNutrition(t *testing.T) {
	factsService := nutrition.NewService(nutrition.NewMemoryRepository(7))
	router := setupVisionRouter(&fakeClient{analysisReply: recipeJSON}, factsService)

	w := postImage(t, router, map[string]string{"menuItemId": "7"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"saved":true`) {
		t.Errorf("expected saved flag in response, got %s", w.Body.String())
	}

	facts, err := factsService.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("expected facts persisted, got %v", err)
	}
	if facts.Calories != 620 {
		t.Errorf("expected 620 calories persisted, got %v", facts.Calories)
	}
}

func TestAnalyzeImageKeepsProseWhenNotJSON(t *testing.T) {
	router := setupVisionRouter(&fakeClient{analysisReply: "A lovely plate of food."}, nil)

	w := postImage(t, router, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Analysis      string `json:"analysis"`
		HasRecipeData bool   `json:"hasRecipeData"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.HasRecipeData {
		t.Error("expected no recipe data for prose output")
	}
	if resp.Analysis != "A lovely plate of food." {
		t.Errorf("expected raw text preserved, got %q", resp.Analysis)
	}
}

func TestAnalyzeImageRequiresFile(t *testing.T) {
	router := setupVisionRouter(&fakeClient{analysisReply: recipeJSON}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-image", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAnalyzeImageClientFailure(t *testing.T) {
	router := setupVisionRouter(&fakeClient{err: errors.New("quota exceeded")}, nil)

	w := postImage(t, router, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "quota exceeded") {
		t.Errorf("expected error details, got %s", w.Body.String())
	}
}

func TestGenerateImageEndpoint(t *testing.T) {
	client := &fakeClient{image: &GeneratedImage{
		DataURL: "data:image/png;base64,aGVsbG8=",
		Text:    "A glossy butter chicken.",
	}}
	router := setupVisionRouter(client, nil)

	body, _ := json.Marshal(generateImageRequest{MenuName: "Butter Chicken"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate-food-image", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success      bool   `json:"success"`
		ImageURL     string `json:"imageUrl"`
		TextResponse string `json:"textResponse"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success")
	}
	if !strings.HasPrefix(resp.ImageURL, "data:image/png;base64,") {
		t.Errorf("expected a data URL, got %q", resp.ImageURL)
	}
}

func TestGenerateImageRequiresName(t *testing.T) {
	router := setupVisionRouter(&fakeClient{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate-food-image", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
