package vision

import (
	"context"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/nutrition"
)

// maxImageBytes caps uploaded photos at 10 MB.
const maxImageBytes = 10 << 20

// NutritionSaver stores extracted facts against a menu item. Satisfied
// by the nutrition service.
type NutritionSaver interface {
	Save(ctx context.Context, menuItemID int64, f nutrition.Facts) (*nutrition.Facts, error)
}

// --------------------------------------------------
// HTTP handlers
// --------------------------------------------------

type Handler struct {
	client Client
	facts  NutritionSaver
}

// NewHandler builds the vision handler. facts is optional; pass nil when
// analyses should not be persisted.
func NewHandler(client Client, facts NutritionSaver) *Handler {
	return &Handler{client: client, facts: facts}
}

type generateImageRequest struct {
	MenuName string `json:"menuName" binding:"required"`
}

// AnalyzeImage handles POST /api/analyze-image
func (h *Handler) AnalyzeImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	if header.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large (max 10 MB)"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}

	opts := AnalysisOptions{
		MenuItemName:   c.PostForm("menuItemName"),
		KeyIngredients: c.PostForm("keyIngredients"),
	}

	raw, err := h.client.AnalyzeImage(c.Request.Context(), data, header.Header.Get("Content-Type"), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "image analysis failed",
			"details": err.Error(),
		})
		return
	}

	resp := gin.H{
		"analysis":      raw,
		"hasRecipeData": false,
	}

	recipeData, parseErr := ExtractRecipeData(raw)
	if parseErr == nil {
		resp["analysis"] = recipeData.Analysis
		resp["recipeData"] = recipeData
		resp["hasRecipeData"] = true

		if menuItemID := formInt64(c, "menuItemId"); menuItemID > 0 && h.facts != nil {
			resp["saved"] = h.save(c.Request.Context(), menuItemID, recipeData)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// GenerateImage handles POST /api/generate-food-image
func (h *Handler) GenerateImage(c *gin.Context) {
	var req generateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menuName is required"})
		return
	}

	img, err := h.client.GenerateImage(c.Request.Context(), req.MenuName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "image generation failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"imageUrl":     img.DataURL,
		"textResponse": img.Text,
	})
}

func (h *Handler) save(ctx context.Context, menuItemID int64, data *RecipeData) bool {
	_, err := h.facts.Save(ctx, menuItemID, nutrition.Facts{
		ServingSize: data.ServingSize,
		Calories:    data.Calories,
		ProteinG:    data.ProteinG,
		CarbsG:      data.CarbsG,
		FatG:        data.FatG,
		SodiumMg:    data.SodiumMg,
		Ingredients: data.Ingredients,
		Analysis:    data.Analysis,
	})
	if err != nil {
		log.Printf("⚠️  Failed to save nutrition facts for item %d: %v", menuItemID, err)
		return false
	}
	return true
}

func formInt64(c *gin.Context, field string) int64 {
	v, err := strconv.ParseInt(c.PostForm(field), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
