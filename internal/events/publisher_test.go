package events_test

import (
	"testing"
	"time"

	"github.com/rafaelmdutra/pix-ledger/internal/events"
	"github.com/rafaelmdutra/pix-ledger/models"
	"github.com/shopspring/decimal"
)

func TestNewTransferCompleted(t *testing.T) {
	result := &models.TransferResult{
		FromUserID:          1,
		ToUserID:            2,
		Amount:              decimal.RequireFromString("40.00"),
		Description:         "rent split",
		DebitTransactionID:  10,
		CreditTransactionID: 11,
		CreatedAt:           time.Now(),
	}

	event := events.NewTransferCompleted(result)
	if event.EventID == "" {
		t.Error("expected a generated event id")
	}
	if event.FromUserID != 1 || event.ToUserID != 2 {
		t.Errorf("account ids not carried over: %+v", event)
	}
	if !event.Amount.Equal(result.Amount) {
		t.Errorf("amount mismatch: %s", event.Amount)
	}
	if event.DebitTransactionID != 10 || event.CreditTransactionID != 11 {
		t.Errorf("transaction ids not carried over: %+v", event)
	}
	if !event.OccurredAt.Equal(result.CreatedAt) {
		t.Error("occurred_at should be the commit time")
	}

	second := events.NewTransferCompleted(result)
	if second.EventID == event.EventID {
		t.Error("event ids must be unique per event")
	}
}

func TestNopPublisher(t *testing.T) {
	if err := (events.NopPublisher{}).Publish(events.TransferCompleted{}); err != nil {
		t.Fatalf("nop publisher must never fail: %v", err)
	}
}
