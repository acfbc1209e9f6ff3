package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseStatus string

const (
	ExpenseStatusPending ExpenseStatus = "PENDING"
	ExpenseStatusFailed  ExpenseStatus = "FAILED"
	ExpenseStatusSuccess ExpenseStatus = "SUCCESS"
)

func (s ExpenseStatus) IsValid() bool {
	switch s {
	case ExpenseStatusPending, ExpenseStatusFailed, ExpenseStatusSuccess:
		return true
	}
	return false
}

type Expense struct {
	ID            int             `json:"id" db:"id"`
	UserID        int             `json:"user_id" db:"user_id"`
	IsRecurring   bool            `json:"is_recurring_payment" db:"is_recurring_payment"`
	IsActive      bool            `json:"is_active" db:"is_active"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Description   string          `json:"description" db:"description"`
	ExecutionDate time.Time       `json:"execution_date" db:"execution_date"`
	Status        ExpenseStatus   `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}
