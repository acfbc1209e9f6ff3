package database

import (
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafaelmdutra/pix-ledger/models"
	"github.com/shopspring/decimal"
	"time"
)

const transactionColumns = `id, type, date, amount::text, COALESCE(details, ''), user_id, category, created_at, updated_at`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	var amount string
	err := row.Scan(
		&t.ID,
		&t.Type,
		&t.Date,
		&amount,
		&t.Details,
		&t.UserID,
		&t.Category,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("error parsing amount %q: %v", amount, err)
	}
	return &t, nil
}

func insertTransaction(ctx context.Context, q querier, t *models.Transaction) error {
	if !t.Amount.IsPositive() {
		return models.ErrInvalidAmount
	}
	if t.Type != models.TransactionTypeDebit && t.Type != models.TransactionTypeCredit {
		return fmt.Errorf("unknown transaction type: %s", t.Type)
	}
	if t.Category == "" {
		t.Category = models.CategoryOther
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("unknown transaction category: %s", t.Category)
	}
	if t.Date.IsZero() {
		t.Date = time.Now()
	}

	query := `
		INSERT INTO transactions (type, date, amount, details, user_id, category)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
		RETURNING id, created_at, updated_at`

	err := q.QueryRow(ctx, query,
		t.Type, t.Date, t.Amount.String(), t.Details, t.UserID, t.Category,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating transaction: %v", err)
	}
	return nil
}

// querier is the slice of pgx shared by *pgxpool.Pool and pgx.Tx, so ledger
// writes can either stand alone or join a caller-owned transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTransaction(pool *pgxpool.Pool, t *models.Transaction) error {
	return insertTransaction(context.Background(), pool, t)
}

// CreateTransactionTx appends a ledger row inside tx. The row only becomes
// visible when the surrounding unit of work commits.
func CreateTransactionTx(tx pgx.Tx, t *models.Transaction) error {
	return insertTransaction(context.Background(), tx, t)
}

func GetTransactionByID(pool *pgxpool.Pool, id int) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	t, err := scanTransaction(pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching transaction: %v", err)
	}
	return t, nil
}

func GetTransactionsByUserID(pool *pgxpool.Pool, userID int) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ORDER BY date DESC`

	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %v", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("error listing transactions: %v", err)
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

// UpdateTransactionDetails edits the non-financial fields of a ledger row.
// Amount, type and account are fixed at creation; changing them after the
// fact would desynchronize the ledger from the balances it produced.
func UpdateTransactionDetails(pool *pgxpool.Pool, id int, details string, category models.TransactionCategory) error {
	if !category.IsValid() {
		return fmt.Errorf("unknown transaction category: %s", category)
	}

	query := `
		UPDATE transactions
		SET details = NULLIF($1, ''), category = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3`

	result, err := pool.Exec(context.Background(), query, details, category, id)
	if err != nil {
		return fmt.Errorf("error updating transaction: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("transaction with id %d not found", id)
	}
	return nil
}
