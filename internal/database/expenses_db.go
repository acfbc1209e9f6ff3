package database

import (
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafaelmdutra/pix-ledger/models"
	"github.com/shopspring/decimal"
	"log"
)

const expenseColumns = `id, user_id, is_recurring_payment, is_active, amount::text, description, execution_date, status, created_at, updated_at`

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var e models.Expense
	var amount string
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.IsRecurring,
		&e.IsActive,
		&amount,
		&e.Description,
		&e.ExecutionDate,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("error parsing amount %q: %v", amount, err)
	}
	return &e, nil
}

func validateExpense(e *models.Expense) error {
	if !e.Amount.IsPositive() {
		return models.ErrInvalidAmount
	}
	if e.Description == "" {
		return fmt.Errorf("expense description is required")
	}
	if e.Status == "" {
		e.Status = models.ExpenseStatusPending
	}
	if !e.Status.IsValid() {
		return fmt.Errorf("unknown expense status: %s", e.Status)
	}
	return nil
}

func CreateExpense(pool *pgxpool.Pool, e *models.Expense) error {
	if err := validateExpense(e); err != nil {
		return err
	}

	query := `
		INSERT INTO user_expenses (user_id, is_recurring_payment, is_active, amount, description, execution_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := pool.QueryRow(context.Background(), query,
		e.UserID, e.IsRecurring, e.IsActive, e.Amount.String(), e.Description, e.ExecutionDate, e.Status,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating expense: %v", err)
	}
	return nil
}

func GetExpenseByID(pool *pgxpool.Pool, id int) (*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM user_expenses WHERE id = $1`

	e, err := scanExpense(pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching expense: %v", err)
	}
	return e, nil
}

func GetExpensesByUserID(pool *pgxpool.Pool, userID int) ([]models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM user_expenses WHERE user_id = $1 ORDER BY execution_date DESC`
	return queryExpenses(pool, query, userID)
}

func GetExpensesByUserIDAndStatus(pool *pgxpool.Pool, userID int, status models.ExpenseStatus) ([]models.Expense, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown expense status: %s", status)
	}
	query := `SELECT ` + expenseColumns + ` FROM user_expenses WHERE user_id = $1 AND status = $2 ORDER BY execution_date DESC`
	return queryExpenses(pool, query, userID, status)
}

func queryExpenses(pool *pgxpool.Pool, query string, args ...any) ([]models.Expense, error) {
	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing expenses: %v", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("error listing expenses: %v", err)
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

func UpdateExpense(pool *pgxpool.Pool, e *models.Expense) error {
	if err := validateExpense(e); err != nil {
		return err
	}

	query := `
		UPDATE user_expenses
		SET is_recurring_payment = $1, is_active = $2, amount = $3, description = $4,
		    execution_date = $5, status = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7`

	result, err := pool.Exec(context.Background(), query,
		e.IsRecurring, e.IsActive, e.Amount.String(), e.Description, e.ExecutionDate, e.Status, e.ID)
	if err != nil {
		return fmt.Errorf("error updating expense: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("expense with id %d not found", e.ID)
	}
	return nil
}

func DeleteExpense(pool *pgxpool.Pool, id int) (bool, error) {
	result, err := pool.Exec(context.Background(), `DELETE FROM user_expenses WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting expense: %v", err)
	}
	return result.RowsAffected() > 0, nil
}

// ProcessDueExpenses executes every active PENDING expense whose execution
// date has passed. Each expense runs in its own transaction: the owner's row
// is locked, the balance checked against that locked read, and on success
// the debit plus its ledger row plus the status change commit together.
// Insufficient funds marks the expense FAILED; a recurring success rolls the
// execution date one month forward and stays PENDING for the next run.
func ProcessDueExpenses(pool *pgxpool.Pool) error {
	query := `
		SELECT ` + expenseColumns + `
		FROM user_expenses
		WHERE is_active = TRUE AND status = 'PENDING' AND execution_date <= CURRENT_TIMESTAMP
		ORDER BY execution_date`

	due, err := queryExpenses(pool, query)
	if err != nil {
		return err
	}

	for i := range due {
		if err := executeExpense(pool, &due[i]); err != nil {
			log.Printf("error executing expense %d: %v", due[i].ID, err)
		}
	}
	return nil
}

func executeExpense(pool *pgxpool.Pool, e *models.Expense) error {
	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error opening transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	user, err := GetUserForUpdate(tx, e.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user with id %d not found", e.UserID)
	}

	if user.Balance.LessThan(e.Amount) {
		if _, err := tx.Exec(ctx,
			`UPDATE user_expenses SET status = 'FAILED', updated_at = CURRENT_TIMESTAMP WHERE id = $1`,
			e.ID); err != nil {
			return fmt.Errorf("error marking expense failed: %v", err)
		}
		return tx.Commit(ctx)
	}

	if err := UpdateUserBalance(tx, user.ID, user.Balance.Sub(e.Amount)); err != nil {
		return err
	}

	debit := &models.Transaction{
		Type:     models.TransactionTypeDebit,
		Amount:   e.Amount,
		Details:  e.Description,
		UserID:   user.ID,
		Category: models.CategoryExpenses,
	}
	if err := CreateTransactionTx(tx, debit); err != nil {
		return err
	}

	if e.IsRecurring {
		next := e.ExecutionDate.AddDate(0, 1, 0)
		_, err = tx.Exec(ctx,
			`UPDATE user_expenses SET execution_date = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
			next, e.ID)
	} else {
		_, err = tx.Exec(ctx,
			`UPDATE user_expenses SET status = 'SUCCESS', updated_at = CURRENT_TIMESTAMP WHERE id = $1`,
			e.ID)
	}
	if err != nil {
		return fmt.Errorf("error updating expense status: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing expense execution: %v", err)
	}
	log.Printf("expense %d executed for user %d, amount %s", e.ID, user.ID, e.Amount.StringFixed(2))
	return nil
}
