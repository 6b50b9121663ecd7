package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/db"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/middleware"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/nutrition"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/vision"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	settings := vision.SettingsFromEnv()
	if err := settings.Validate(); err != nil {
		log.Fatal("❌ Invalid vision settings:", err)
	}

	// ───────────────────────── GEMINI ─────────────────────────
	client := vision.NewGeminiClient(settings)

	// Analysis results are only persisted when the shared database is
	// reachable; the service still analyzes images without it.
	var saver vision.NutritionSaver
	if os.Getenv("DATABASE_URL") != "" {
		pgDB := db.ConnectPostgres()
		defer pgDB.Close()
		saver = nutrition.NewService(nutrition.NewPostgresRepository(pgDB))
		log.Println("✅ Nutrition persistence enabled")
	} else {
		log.Println("⚠️  DATABASE_URL not set, analysis results will not be saved")
	}

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── ROUTES ─────────────────────────
	visionHandler := vision.NewHandler(client, saver)

	// Gemini calls are slow and metered, so both endpoints share a
	// small token bucket.
	limited := r.Group("/api")
	limited.Use(middleware.RateLimit(rate.Limit(1), 3))
	{
		limited.POST("/analyze-image", visionHandler.AnalyzeImage)
		limited.POST("/generate-food-image", visionHandler.GenerateImage)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("VISION_PORT")
	if port == "" {
		port = "3002"
	}
	log.Println("🚀 Vision service running at http://localhost:" + port)
	r.Run(":" + port)
}
