package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/codevaulthq/codevault/pkg/auth"
)

func main() {
	fmt.Println("adding seed user into database...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")
	seedEmail := os.Getenv("SEED_EMAIL")
	seedPassword := os.Getenv("SEED_PASSWORD")
	seedName := os.Getenv("SEED_NAME")
	if seedName == "" {
		seedName = "CodeVault Demo"
	}

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	query := `
		INSERT INTO users (id, email, name, photo_url, password_hash)
		VALUES ($1, $2, $3, '', $4)
		ON CONFLICT (email) DO UPDATE SET password_hash = $4
	`
	_, err = pool.Exec(context.Background(), query, uuid.New(), seedEmail, seedName, hash)
	if err != nil {
		log.Fatalf("cannot add user: %v", err)
	}

	fmt.Printf("added or updated seed user '%s' successfully!\n", seedEmail)
}
