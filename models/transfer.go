package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferRequest is the input of a PIX transfer. FromUserID comes from the
// authenticated caller, never from the request body.
type TransferRequest struct {
	FromUserID  int             `json:"-"`
	ToPixKey    string          `json:"to_pix_key"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// TransferResult references the two ledger rows created by a committed transfer.
type TransferResult struct {
	FromUserID          int             `json:"from_user_id"`
	ToUserID            int             `json:"to_user_id"`
	Amount              decimal.Decimal `json:"amount"`
	Description         string          `json:"description,omitempty"`
	DebitTransactionID  int             `json:"debit_transaction_id"`
	CreditTransactionID int             `json:"credit_transaction_id"`
	CreatedAt           time.Time       `json:"created_at"`
}
