package database

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"os"
)

// ConnString builds the connection string from environment variables.
func ConnString() string {
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_HOST"), port, os.Getenv("DB_NAME"))
}

// ConnectPool loads .env and opens the process-wide connection pool. The
// caller owns the pool and must Close it on shutdown.
func ConnectPool(ctx context.Context) (*pgxpool.Pool, error) {
	if err := godotenv.Load(); err != nil {
		return nil, fmt.Errorf("error loading .env file")
	}

	pool, err := pgxpool.New(ctx, ConnString())
	if err != nil {
		return nil, err
	}

	return pool, nil
}
