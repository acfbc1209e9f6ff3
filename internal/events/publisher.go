// Package events publishes transfer notifications for downstream consumers.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/rafaelmdutra/pix-ledger/models"
	"github.com/shopspring/decimal"
)

type TransferCompleted struct {
	EventID             string          `json:"event_id"`
	FromUserID          int             `json:"from_user_id"`
	ToUserID            int             `json:"to_user_id"`
	Amount              decimal.Decimal `json:"amount"`
	Description         string          `json:"description,omitempty"`
	DebitTransactionID  int             `json:"debit_transaction_id"`
	CreditTransactionID int             `json:"credit_transaction_id"`
	OccurredAt          time.Time       `json:"occurred_at"`
}

// NewTransferCompleted builds the event from a committed transfer result.
func NewTransferCompleted(result *models.TransferResult) TransferCompleted {
	return TransferCompleted{
		EventID:             uuid.NewString(),
		FromUserID:          result.FromUserID,
		ToUserID:            result.ToUserID,
		Amount:              result.Amount,
		Description:         result.Description,
		DebitTransactionID:  result.DebitTransactionID,
		CreditTransactionID: result.CreditTransactionID,
		OccurredAt:          result.CreatedAt,
	}
}

type Publisher interface {
	Publish(event TransferCompleted) error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(event TransferCompleted) error { return nil }
