package database_test

import (
	"testing"
	"time"

	"github.com/rafaelmdutra/pix-ledger/internal/database"
	"github.com/rafaelmdutra/pix-ledger/models"
	"github.com/shopspring/decimal"
)

func TestCreateExpenseValidation(t *testing.T) {
	cases := []struct {
		name    string
		expense models.Expense
	}{
		{"non-positive amount", models.Expense{Amount: decimal.Zero, Description: "x"}},
		{"empty description", models.Expense{Amount: decimal.RequireFromString("10")}},
		{"bad status", models.Expense{Amount: decimal.RequireFromString("10"), Description: "x", Status: "WAITING"}},
	}
	for _, tc := range cases {
		e := tc.expense
		if err := database.CreateExpense(nil, &e); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}

func TestExpenseCRUD(t *testing.T) {
	pool := testPool(t)

	user := createTestUser(t, pool, "0")

	expense := &models.Expense{
		UserID:        user.ID,
		IsActive:      true,
		Amount:        decimal.RequireFromString("75.00"),
		Description:   "internet bill",
		ExecutionDate: time.Now().AddDate(0, 0, 7),
	}
	if err := database.CreateExpense(pool, expense); err != nil {
		t.Fatalf("error creating expense: %v", err)
	}
	if expense.Status != models.ExpenseStatusPending {
		t.Errorf("status should default to PENDING, got %s", expense.Status)
	}

	expense.Amount = decimal.RequireFromString("80.00")
	expense.IsRecurring = true
	if err := database.UpdateExpense(pool, expense); err != nil {
		t.Fatalf("error updating expense: %v", err)
	}

	fetched, err := database.GetExpenseByID(pool, expense.ID)
	if err != nil {
		t.Fatalf("error fetching expense: %v", err)
	}
	if !fetched.Amount.Equal(expense.Amount) || !fetched.IsRecurring {
		t.Errorf("expense not updated: %+v", fetched)
	}

	byStatus, err := database.GetExpensesByUserIDAndStatus(pool, user.ID, models.ExpenseStatusPending)
	if err != nil {
		t.Fatalf("error listing expenses by status: %v", err)
	}
	if len(byStatus) != 1 {
		t.Errorf("expected 1 pending expense, got %d", len(byStatus))
	}

	deleted, err := database.DeleteExpense(pool, expense.ID)
	if err != nil {
		t.Fatalf("error deleting expense: %v", err)
	}
	if !deleted {
		t.Error("expected the expense to be deleted")
	}
}

func TestProcessDueExpensesDebitsOwner(t *testing.T) {
	pool := testPool(t)

	user := createTestUser(t, pool, "100.00")

	expense := &models.Expense{
		UserID:        user.ID,
		IsActive:      true,
		Amount:        decimal.RequireFromString("40.00"),
		Description:   "electricity bill",
		ExecutionDate: time.Now().Add(-time.Hour),
	}
	if err := database.CreateExpense(pool, expense); err != nil {
		t.Fatalf("error creating expense: %v", err)
	}

	if err := database.ProcessDueExpenses(pool); err != nil {
		t.Fatalf("error processing due expenses: %v", err)
	}

	after, err := database.GetExpenseByID(pool, expense.ID)
	if err != nil {
		t.Fatalf("error fetching expense: %v", err)
	}
	if after.Status != models.ExpenseStatusSuccess {
		t.Errorf("expected SUCCESS, got %s", after.Status)
	}

	owner, err := database.GetUserByID(pool, user.ID)
	if err != nil {
		t.Fatalf("error fetching user: %v", err)
	}
	want := decimal.RequireFromString("60.00")
	if !owner.Balance.Equal(want) {
		t.Errorf("balance after execution: got %s, want %s", owner.Balance, want)
	}

	transactions, err := database.GetTransactionsByUserID(pool, user.ID)
	if err != nil {
		t.Fatalf("error listing transactions: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected 1 ledger row, got %d", len(transactions))
	}
	if transactions[0].Type != models.TransactionTypeDebit || transactions[0].Category != models.CategoryExpenses {
		t.Errorf("unexpected ledger row: %+v", transactions[0])
	}
}

func TestProcessDueExpensesInsufficientFunds(t *testing.T) {
	pool := testPool(t)

	user := createTestUser(t, pool, "10.00")

	expense := &models.Expense{
		UserID:        user.ID,
		IsActive:      true,
		Amount:        decimal.RequireFromString("50.00"),
		Description:   "rent",
		ExecutionDate: time.Now().Add(-time.Hour),
	}
	if err := database.CreateExpense(pool, expense); err != nil {
		t.Fatalf("error creating expense: %v", err)
	}

	if err := database.ProcessDueExpenses(pool); err != nil {
		t.Fatalf("error processing due expenses: %v", err)
	}

	after, err := database.GetExpenseByID(pool, expense.ID)
	if err != nil {
		t.Fatalf("error fetching expense: %v", err)
	}
	if after.Status != models.ExpenseStatusFailed {
		t.Errorf("expected FAILED, got %s", after.Status)
	}

	owner, err := database.GetUserByID(pool, user.ID)
	if err != nil {
		t.Fatalf("error fetching user: %v", err)
	}
	if !owner.Balance.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("balance must be untouched, got %s", owner.Balance)
	}

	transactions, err := database.GetTransactionsByUserID(pool, user.ID)
	if err != nil {
		t.Fatalf("error listing transactions: %v", err)
	}
	if len(transactions) != 0 {
		t.Errorf("expected no ledger rows, got %d", len(transactions))
	}
}
