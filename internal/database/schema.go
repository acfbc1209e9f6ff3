package database

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
	"log"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		balance DECIMAL(15,2) NOT NULL DEFAULT 0 CHECK (balance >= 0),
		credit_score INTEGER NOT NULL DEFAULT 0 CHECK (credit_score >= 0 AND credit_score <= 1000),
		configuration JSONB DEFAULT '{}',
		ia_agent_id VARCHAR(255),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
	`CREATE TABLE IF NOT EXISTS user_pix_keys (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type VARCHAR(20) NOT NULL,
		key VARCHAR(255) NOT NULL UNIQUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_pix_keys_user_id ON user_pix_keys(user_id)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id SERIAL PRIMARY KEY,
		type VARCHAR(10) NOT NULL CHECK (type IN ('DEBIT', 'CREDIT')),
		date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		amount DECIMAL(15,2) NOT NULL CHECK (amount >= 0),
		details TEXT,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		category VARCHAR(20) NOT NULL DEFAULT 'OTHER' CHECK (category IN ('FOOD','TRANSPORT','ENTERTAINMENT','EXPENSES','OTHER')),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)`,
	`CREATE TABLE IF NOT EXISTS user_expenses (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		is_recurring_payment BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		amount DECIMAL(15,2) NOT NULL CHECK (amount >= 0),
		description VARCHAR(255) NOT NULL,
		execution_date TIMESTAMP NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING','FAILED','SUCCESS')),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_expenses_user_id ON user_expenses(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_user_expenses_status ON user_expenses(status)`,
	`CREATE INDEX IF NOT EXISTS idx_user_expenses_execution_date ON user_expenses(execution_date)`,
}

// InitSchema creates all tables and indexes if they do not exist yet.
func InitSchema(pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(context.Background(), stmt); err != nil {
			return fmt.Errorf("error initializing schema: %v", err)
		}
	}
	log.Println("database schema is up to date")
	return nil
}
