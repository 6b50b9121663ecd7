package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/alerts"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/auth"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/chat"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/db"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/forecast"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/inventory"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/menu"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/middleware"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/nutrition"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/orders"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/pricing"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/storage"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/units"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.Metrics())

	// ───────────────────────── OPTIONAL BACKENDS ─────────────────────────
	var store menu.Storage
	if os.Getenv("S3_ACCESS_KEY") != "" {
		s3, err := storage.NewS3Client(context.Background())
		if err != nil {
			log.Fatal("❌ S3 init failed:", err)
		}
		store = s3
		log.Println("✅ Image storage configured")
	} else {
		log.Println("⚠️  S3_ACCESS_KEY not set, image uploads disabled")
	}

	var cache *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := cache.Ping(context.Background()).Err(); err != nil {
			log.Println("⚠️  Redis unreachable, pricing cache disabled:", err)
			cache = nil
		} else {
			log.Println("✅ Connected to Redis")
		}
	}

	var publisher orders.Publisher
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		kafkaPublisher := orders.NewKafkaPublisher(strings.Split(brokers, ","))
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Println("✅ Kafka order events configured")
	}

	var (
		pricingModel pricing.RationaleModel
		chatModel    chat.Model
	)
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		modelName := os.Getenv("OPENAI_MODEL")
		if modelName == "" {
			modelName = "gpt-4o-mini"
		}
		llmClient, err := openai.New(
			openai.WithModel(modelName),
			openai.WithToken(key),
		)
		if err != nil {
			log.Fatal("❌ Language model init failed:", err)
		}
		pricingModel = llmClient
		chatModel = llmClient
		log.Println("✅ Language model configured:", modelName)
	} else {
		log.Println("⚠️  OPENAI_API_KEY not set, chat and pricing rationales disabled")
	}

	// ───────────────────────── REPOS ─────────────────────────
	table := units.DefaultTable()

	menuRepo := menu.NewPostgresRepository(pgDB)
	inventoryRepo := inventory.NewPostgresRepository(pgDB)
	forecastRepo := forecast.NewPostgresRepository(pgDB)
	orderRepo := orders.NewPostgresRepository(pgDB)
	pricingRepo := pricing.NewPostgresRepository(pgDB)
	nutritionRepo := nutrition.NewPostgresRepository(pgDB)
	chatStore := chat.NewPostgresStore(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	menuService := menu.NewService(menuRepo, store)
	inventoryService := inventory.NewService(inventoryRepo, table)
	forecastService := forecast.NewService(forecastRepo)
	orderService := orders.NewService(orderRepo, menuService, inventoryService, table, publisher)
	pricingService := pricing.NewService(pricingRepo, table, cache, pricingModel)
	nutritionService := nutrition.NewService(nutritionRepo)
	alertService := alerts.NewService(inventoryService, forecastService, table)
	assistant := chat.NewAssistant(chatStore, chatModel, menuService)

	// ───────────────────────── HANDLERS ─────────────────────────
	menuHandler := menu.NewHandler(menuService)
	inventoryHandler := inventory.NewHandler(inventoryService)
	forecastHandler := forecast.NewHandler(forecastService)
	orderHandler := orders.NewHandler(orderService)
	pricingHandler := pricing.NewHandler(pricingService)
	nutritionHandler := nutrition.NewHandler(nutritionService)
	alertHandler := alerts.NewHandler(alertService)
	chatHandler := chat.NewHandler(assistant)

	// ───────────────────────── PUBLIC ROUTES ─────────────────────────
	r.GET("/api/menu", menuHandler.PublicMenu)
	r.POST("/api/orders", orderHandler.Create)
	r.POST("/api/chat", chatHandler.Send)

	// ───────────────────────── BACK OFFICE ROUTES ─────────────────────────
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("/menu-items", menuHandler.Create)
		api.GET("/menu-items", menuHandler.List)
		api.GET("/menu-items/:id", menuHandler.Get)
		api.PUT("/menu-items/:id", menuHandler.Update)
		api.POST("/menu-items/:id/image", menuHandler.UploadImage)
		api.PUT("/menu-items/:id/recipe", menuHandler.PutRecipe)
		api.GET("/menu-items/:id/recipe", menuHandler.GetRecipe)

		api.PUT("/menu-items/:id/nutrition", nutritionHandler.Put)
		api.GET("/menu-items/:id/nutrition", nutritionHandler.Get)

		api.PUT("/menu-items/:id/forecast", forecastHandler.PutSeries)
		api.GET("/menu-items/:id/forecast", forecastHandler.GetSeries)
		api.GET("/menu-items/:id/forecast/chart", forecastHandler.Chart)

		api.POST("/ingredients", inventoryHandler.Create)
		api.GET("/ingredients", inventoryHandler.List)
		api.GET("/ingredients/:id", inventoryHandler.Get)
		api.PUT("/ingredients/:id", inventoryHandler.Update)
		api.POST("/ingredients/:id/adjust", inventoryHandler.Adjust)

		api.GET("/orders", orderHandler.List)
		api.GET("/orders/:id", orderHandler.Get)
		api.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
		api.POST("/orders/:id/cancel", orderHandler.Cancel)

		api.GET("/alerts", alertHandler.List)

		api.GET("/chat/history/:sessionID", chatHandler.History)
		api.DELETE("/chat/history/:sessionID", chatHandler.ClearHistory)
	}

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	admin := r.Group("/api")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		admin.DELETE("/menu-items/:id", menuHandler.Delete)
		admin.DELETE("/menu-items/:id/nutrition", nutritionHandler.Delete)
		admin.DELETE("/ingredients/:id", inventoryHandler.Delete)

		admin.GET("/pricing/recommendations", pricingHandler.List)
		admin.GET("/pricing/recommendations/:id", pricingHandler.Get)
	}

	// ───────────────────────── ALERT STREAM ─────────────────────────
	hub := alerts.NewHub(alertService, 30*time.Second)
	r.GET("/ws/alerts", hub.ServeWS)

	// ───────────────────────── WORKERS ─────────────────────────
	go forecastService.RunRollupWorker(time.Hour)
	go hub.Run()

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", middleware.MetricsHandler())

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "5001"
	}
	log.Println("🚀 API running at http://localhost:" + port)
	r.Run(":" + port)
}
