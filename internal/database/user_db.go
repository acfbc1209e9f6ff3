package database

import (
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafaelmdutra/pix-ledger/models"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const userColumns = `id, name, email, balance::text, credit_score, configuration, COALESCE(ia_agent_id, ''), created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var balance string
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&balance,
		&user.CreditScore,
		&user.Configuration,
		&user.AgentID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("error parsing balance %q: %v", balance, err)
	}
	if user.Configuration == nil {
		user.Configuration = map[string]any{}
	}
	return &user, nil
}

func CreateUser(pool *pgxpool.Pool, user *models.User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %v", err)
	}
	if user.Configuration == nil {
		user.Configuration = map[string]any{}
	}

	query := `
		INSERT INTO users (name, email, password, balance, credit_score, configuration)
		VALUES ($1, LOWER($2), $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err = pool.QueryRow(context.Background(), query,
		user.Name,
		user.Email,
		string(hashed),
		user.Balance.String(),
		user.CreditScore,
		user.Configuration,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.ErrEmailTaken
		}
		return fmt.Errorf("error creating user: %v", err)
	}
	user.Password = ""
	return nil
}

// GetUserByID returns (nil, nil) when no user exists with the given id.
func GetUserByID(pool *pgxpool.Pool, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching user by id: %v", err)
	}
	return user, nil
}

func GetUserByEmail(pool *pgxpool.Pool, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	user, err := scanUser(pool.QueryRow(context.Background(), query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching user by email: %v", err)
	}
	return user, nil
}

// GetUserByPixKey resolves a pix key to the account that owns it.
func GetUserByPixKey(pool *pgxpool.Pool, key string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = (SELECT user_id FROM user_pix_keys WHERE key = $1)`

	user, err := scanUser(pool.QueryRow(context.Background(), query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching user by pix key: %v", err)
	}
	return user, nil
}

func GetAllUsers(pool *pgxpool.Pool) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %v", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error listing users: %v", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// UpdateUser changes profile fields only. Balance is never writable here;
// it moves through UpdateUserBalance inside a transfer's transaction.
func UpdateUser(pool *pgxpool.Pool, user *models.User) error {
	query := `
		UPDATE users
		SET name = $1, email = LOWER($2), credit_score = $3, configuration = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5`

	result, err := pool.Exec(context.Background(), query,
		user.Name, user.Email, user.CreditScore, user.Configuration, user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.ErrEmailTaken
		}
		return fmt.Errorf("error updating user: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user with id %d not found", user.ID)
	}
	return nil
}

// DeleteUser removes the account. Pix keys, ledger rows and expenses go with
// it through the ON DELETE CASCADE constraints; the agent document is only a
// weak reference and is left to the secondary store.
func DeleteUser(pool *pgxpool.Pool, id int) (bool, error) {
	result, err := pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting user: %v", err)
	}
	return result.RowsAffected() > 0, nil
}

func AuthenticateUser(pool *pgxpool.Pool, email, password string) (*models.User, error) {
	query := `SELECT password FROM users WHERE LOWER(email) = LOWER($1)`

	var hashed string
	err := pool.QueryRow(context.Background(), query, email).Scan(&hashed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invalid email or password")
		}
		return nil, fmt.Errorf("error authenticating user: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	return GetUserByEmail(pool, email)
}

// GetUserForUpdate re-reads a user row inside tx holding a row lock, so the
// balance seen here stays valid until the transaction ends. Callers locking
// more than one account must do so in ascending id order.
func GetUserForUpdate(tx pgx.Tx, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`

	user, err := scanUser(tx.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error locking user row: %v", err)
	}
	return user, nil
}

// UpdateUserBalance sets the balance unconditionally. It only takes a pgx.Tx
// on purpose: a balance write must always share the atomic unit of the
// ledger rows written with it.
func UpdateUserBalance(tx pgx.Tx, userID int, newBalance decimal.Decimal) error {
	query := `UPDATE users SET balance = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`

	result, err := tx.Exec(context.Background(), query, newBalance.String(), userID)
	if err != nil {
		return fmt.Errorf("error updating balance: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user with id %d not found", userID)
	}
	return nil
}
