package database_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rafaelmdutra/pix-ledger/internal/database"
	"github.com/rafaelmdutra/pix-ledger/models"
	"github.com/shopspring/decimal"
)

// testPool connects to the database configured in .env. Tests that need a
// live database skip when none is configured.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")
	if os.Getenv("DB_HOST") == "" {
		t.Skip("DB_HOST not set, skipping database test")
	}

	pool, err := pgxpool.New(context.Background(), database.ConnString())
	if err != nil {
		t.Fatalf("error connecting to database: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.InitSchema(pool); err != nil {
		t.Fatalf("error initializing schema: %v", err)
	}
	return pool
}

// createTestUser inserts a user with a unique email and the given balance,
// removing it again when the test finishes.
func createTestUser(t *testing.T, pool *pgxpool.Pool, balance string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "Test User",
		Email:    fmt.Sprintf("user%d@test.local", time.Now().UnixNano()),
		Password: "secret123",
		Balance:  decimal.RequireFromString(balance),
	}
	if err := database.CreateUser(pool, user); err != nil {
		t.Fatalf("error creating test user: %v", err)
	}
	t.Cleanup(func() {
		_, _ = database.DeleteUser(pool, user.ID)
	})
	return user
}

func addTestPixKey(t *testing.T, pool *pgxpool.Pool, user *models.User) *models.PixKey {
	t.Helper()
	pixKey := &models.PixKey{
		UserID: user.ID,
		Type:   models.PixKeyTypeEmail,
		Key:    user.Email,
	}
	if err := database.AddPixKey(pool, pixKey); err != nil {
		t.Fatalf("error adding test pix key: %v", err)
	}
	return pixKey
}
