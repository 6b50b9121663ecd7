package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/auth"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/db"
	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/router"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatalf("❌ Missing env var: %s", "JWT_SECRET")
	}

	// ───────────────────────── DB ─────────────────────────
	mysqlDB := db.ConnectMySQL()
	defer mysqlDB.Close()

	// ───────────────────────── WIRING ─────────────────────────
	userRepo := auth.NewMySQLUserRepository(mysqlDB)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService)

	r := router.NewRouter(authHandler)

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("AUTH_PORT")
	if port == "" {
		port = "3001"
	}
	log.Println("🚀 Auth service running at http://localhost:" + port)
	r.Run(":" + port)
}
