package utils

import (
	"fmt"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafaelmdutra/pix-ledger/internal/database"
	"github.com/rafaelmdutra/pix-ledger/models"
	"github.com/shopspring/decimal"
	"log"
	"time"
)

// GenerateTestUsers seeds accounts with a random balance and an email pix
// key each, for local development.
func GenerateTestUsers(pool *pgxpool.Pool, numUsers int) {
	for i := 0; i < numUsers; i++ {
		user := &models.User{
			Name:        gofakeit.Name(),
			Email:       gofakeit.Email(),
			Password:    gofakeit.Password(true, true, true, false, false, 8),
			Balance:     decimal.NewFromFloat(gofakeit.Price(0, 5000)).Round(2),
			CreditScore: gofakeit.Number(0, 1000),
		}
		if err := database.CreateUser(pool, user); err != nil {
			log.Fatalf("error seeding user: %v", err)
		}

		pixKey := &models.PixKey{
			UserID: user.ID,
			Type:   models.PixKeyTypeEmail,
			Key:    user.Email,
		}
		if err := database.AddPixKey(pool, pixKey); err != nil {
			log.Fatalf("error seeding pix key: %v", err)
		}
	}
}

func GenerateTestExpenses(pool *pgxpool.Pool, userID, numExpenses int) {
	for i := 0; i < numExpenses; i++ {
		expense := &models.Expense{
			UserID:        userID,
			IsRecurring:   gofakeit.Bool(),
			IsActive:      true,
			Amount:        decimal.NewFromFloat(gofakeit.Price(1, 300)).Round(2),
			Description:   fmt.Sprintf("%s bill", gofakeit.Company()),
			ExecutionDate: time.Now().AddDate(0, 0, gofakeit.Number(1, 30)),
			Status:        models.ExpenseStatusPending,
		}
		if err := database.CreateExpense(pool, expense); err != nil {
			log.Fatalf("error seeding expense: %v", err)
		}
	}
}
