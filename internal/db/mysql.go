package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// ConnectMySQL opens the auth database. MySQL inside docker-compose can take a
// few seconds to accept connections, so the ping is retried before giving up.
func ConnectMySQL() *sql.DB {
	host := envOr("MYSQL_HOST", "localhost")
	port := envOr("MYSQL_PORT", "3306")
	user := envOr("MYSQL_USER", "root")
	password := os.Getenv("MYSQL_PASSWORD")
	database := envOr("MYSQL_DATABASE", "restaurant_auth")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, password, host, port, database)

	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatal("MySQL open failed:", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	for attempt := 1; attempt <= 10; attempt++ {
		if err = conn.Ping(); err == nil {
			break
		}
		log.Printf("MySQL not ready (attempt %d/10): %v", attempt, err)
		time.Sleep(3 * time.Second)
	}
	if err != nil {
		log.Fatal("MySQL connection failed:", err)
	}

	log.Println("✅ Connected to MySQL")

	if err := initAuthSchema(conn); err != nil {
		log.Fatal("Failed to initialize auth schema:", err)
	}

	return conn
}

func initAuthSchema(conn *sql.DB) error {
	usersSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(100) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'STAFF',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)
	`
	if _, err := conn.Exec(usersSQL); err != nil {
		return err
	}

	log.Println("✅ Auth schema initialized successfully")
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
