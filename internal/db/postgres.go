package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// MENU ITEMS
	// -------------------------------
	menuItemsSQL := `
		CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			category VARCHAR(50) NOT NULL,
			description TEXT,
			price NUMERIC(10,2) NOT NULL,
			image_url VARCHAR(500),
			available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ DEFAULT now(),
			updated_at TIMESTAMPTZ DEFAULT now()
		)
	`
	if _, err := db.Exec(ctx, menuItemsSQL); err != nil {
		return err
	}

	// -------------------------------
	// INGREDIENTS (INVENTORY)
	// -------------------------------
	ingredientsSQL := `
		CREATE TABLE IF NOT EXISTS ingredients (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			stock_qty NUMERIC(12,3) NOT NULL DEFAULT 0,
			stock_unit VARCHAR(20) NOT NULL,
			unit_cost NUMERIC(10,4) NOT NULL DEFAULT 0,
			reorder_level NUMERIC(12,3) NOT NULL DEFAULT 0,
			lead_time_days INT NOT NULL DEFAULT 3,
			updated_at TIMESTAMPTZ DEFAULT now()
		)
	`
	if _, err := db.Exec(ctx, ingredientsSQL); err != nil {
		return err
	}

	// -------------------------------
	// RECIPES (MENU ITEM -> INGREDIENTS)
	// -------------------------------
	recipeItemsSQL := `
		CREATE TABLE IF NOT EXISTS recipe_items (
			id SERIAL PRIMARY KEY,
			menu_item_id INT NOT NULL REFERENCES menu_items(id) ON DELETE CASCADE,
			ingredient_id INT NOT NULL REFERENCES ingredients(id),
			quantity NUMERIC(12,3) NOT NULL,
			unit VARCHAR(20) NOT NULL,
			UNIQUE (menu_item_id, ingredient_id)
		)
	`
	if _, err := db.Exec(ctx, recipeItemsSQL); err != nil {
		return err
	}

	// -------------------------------
	// ORDERS
	// -------------------------------
	ordersSQL := `
		CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			reference UUID NOT NULL UNIQUE,
			customer_name VARCHAR(255) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			subtotal NUMERIC(10,2) NOT NULL,
			total NUMERIC(10,2) NOT NULL,
			created_at TIMESTAMPTZ DEFAULT now(),
			updated_at TIMESTAMPTZ DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id INT NOT NULL REFERENCES menu_items(id),
			quantity INT NOT NULL,
			unit_price NUMERIC(10,2) NOT NULL,
			line_total NUMERIC(10,2) NOT NULL
		)
	`
	if _, err := db.Exec(ctx, ordersSQL); err != nil {
		return err
	}

	// -------------------------------
	// DEMAND FORECASTS
	// -------------------------------
	forecastsSQL := `
		CREATE TABLE IF NOT EXISTS forecasts (
			id SERIAL PRIMARY KEY,
			menu_item_id INT NOT NULL REFERENCES menu_items(id) ON DELETE CASCADE,
			day DATE NOT NULL,
			predicted_qty NUMERIC(12,3) NOT NULL,
			actual_qty NUMERIC(12,3),
			created_at TIMESTAMPTZ DEFAULT now(),
			UNIQUE (menu_item_id, day)
		)
	`
	if _, err := db.Exec(ctx, forecastsSQL); err != nil {
		return err
	}

	// -------------------------------
	// NUTRITION FACTS (ONE ROW PER MENU ITEM)
	// -------------------------------
	nutritionSQL := `
		CREATE TABLE IF NOT EXISTS nutrition_facts (
			menu_item_id INT PRIMARY KEY REFERENCES menu_items(id) ON DELETE CASCADE,
			serving_size VARCHAR(100),
			calories NUMERIC(8,1),
			protein_g NUMERIC(8,2),
			carbs_g NUMERIC(8,2),
			fat_g NUMERIC(8,2),
			sodium_mg NUMERIC(10,1),
			ingredients JSONB,
			analysis TEXT,
			updated_at TIMESTAMPTZ DEFAULT now()
		)
	`
	if _, err := db.Exec(ctx, nutritionSQL); err != nil {
		return err
	}

	// -------------------------------
	// CHAT HISTORY
	// -------------------------------
	chatSQL := `
		CREATE TABLE IF NOT EXISTS chat_messages (
			id SERIAL PRIMARY KEY,
			session_id VARCHAR(100) NOT NULL,
			role VARCHAR(20) NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_chat_messages_session
		ON chat_messages (session_id, id)
	`
	if _, err := db.Exec(ctx, chatSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
