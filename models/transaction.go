package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "DEBIT"
	TransactionTypeCredit TransactionType = "CREDIT"
)

type TransactionCategory string

const (
	CategoryFood          TransactionCategory = "FOOD"
	CategoryTransport     TransactionCategory = "TRANSPORT"
	CategoryEntertainment TransactionCategory = "ENTERTAINMENT"
	CategoryExpenses      TransactionCategory = "EXPENSES"
	CategoryOther         TransactionCategory = "OTHER"
)

func (c TransactionCategory) IsValid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryEntertainment, CategoryExpenses, CategoryOther:
		return true
	}
	return false
}

// Transaction is one ledger row. Amount, Type and UserID are fixed at
// creation time; only Details and Category may change afterwards.
type Transaction struct {
	ID        int                 `json:"id" db:"id"`
	Type      TransactionType     `json:"type" db:"type"`
	Date      time.Time           `json:"date" db:"date"`
	Amount    decimal.Decimal     `json:"amount" db:"amount"`
	Details   string              `json:"details" db:"details"`
	UserID    int                 `json:"user_id" db:"user_id"`
	Category  TransactionCategory `json:"category" db:"category"`
	CreatedAt time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" db:"updated_at"`
}
