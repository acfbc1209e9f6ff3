package database

import (
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafaelmdutra/pix-ledger/models"
)

// AddPixKey registers a new alias for the account. Uniqueness is enforced by
// the unique index on user_pix_keys.key, so a key held by any account at all
// comes back as models.ErrPixKeyTaken and never reassigns ownership.
func AddPixKey(pool *pgxpool.Pool, pixKey *models.PixKey) error {
	if pixKey.Key == "" {
		return models.ErrEmptyPixKey
	}
	if !pixKey.Type.IsValid() {
		return fmt.Errorf("unknown pix key type: %s", pixKey.Type)
	}

	query := `
		INSERT INTO user_pix_keys (user_id, type, key)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := pool.QueryRow(context.Background(), query,
		pixKey.UserID, pixKey.Type, pixKey.Key).Scan(&pixKey.ID, &pixKey.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return models.ErrPixKeyTaken
			}
			if pgErr.Code == "23503" {
				return fmt.Errorf("user with id %d not found", pixKey.UserID)
			}
		}
		return fmt.Errorf("error adding pix key: %v", err)
	}
	return nil
}

// RemovePixKey deletes the alias if it belongs to the given account. Returns
// false when no such mapping exists.
func RemovePixKey(pool *pgxpool.Pool, userID int, key string) (bool, error) {
	query := `DELETE FROM user_pix_keys WHERE user_id = $1 AND key = $2`

	result, err := pool.Exec(context.Background(), query, userID, key)
	if err != nil {
		return false, fmt.Errorf("error removing pix key: %v", err)
	}
	return result.RowsAffected() > 0, nil
}

func ListPixKeys(pool *pgxpool.Pool, userID int) ([]models.PixKey, error) {
	query := `
		SELECT id, user_id, type, key, created_at
		FROM user_pix_keys
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing pix keys: %v", err)
	}
	defer rows.Close()

	var keys []models.PixKey
	for rows.Next() {
		var k models.PixKey
		if err := rows.Scan(&k.ID, &k.UserID, &k.Type, &k.Key, &k.CreatedAt); err != nil {
			return nil, fmt.Errorf("error listing pix keys: %v", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
