package transfer_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rafaelmdutra/pix-ledger/internal/database"
	"github.com/rafaelmdutra/pix-ledger/internal/transfer"
	"github.com/rafaelmdutra/pix-ledger/models"
	"github.com/shopspring/decimal"
)

func TestPixTransferValidation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.TransferRequest
		want error
	}{
		{"zero sender", models.TransferRequest{ToPixKey: "k", Amount: decimal.NewFromInt(1)}, models.ErrInvalidSender},
		{"negative sender", models.TransferRequest{FromUserID: -3, ToPixKey: "k", Amount: decimal.NewFromInt(1)}, models.ErrInvalidSender},
		{"empty pix key", models.TransferRequest{FromUserID: 1, Amount: decimal.NewFromInt(1)}, models.ErrEmptyPixKey},
		{"zero amount", models.TransferRequest{FromUserID: 1, ToPixKey: "k"}, models.ErrInvalidAmount},
		{"negative amount", models.TransferRequest{FromUserID: 1, ToPixKey: "k", Amount: decimal.NewFromInt(-5)}, models.ErrInvalidAmount},
	}

	for _, tc := range cases {
		// A nil pool proves validation failures never reach the database.
		_, err := transfer.PixTransfer(ctx, nil, tc.req)
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")
	if os.Getenv("DB_HOST") == "" {
		t.Skip("DB_HOST not set, skipping database test")
	}

	pool, err := pgxpool.New(context.Background(), database.ConnString())
	if err != nil {
		t.Fatalf("error connecting to database: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.InitSchema(pool); err != nil {
		t.Fatalf("error initializing schema: %v", err)
	}
	return pool
}

func createAccount(t *testing.T, pool *pgxpool.Pool, name, balance string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s%d@test.local", name, time.Now().UnixNano()),
		Password: "secret123",
		Balance:  decimal.RequireFromString(balance),
	}
	if err := database.CreateUser(pool, user); err != nil {
		t.Fatalf("error creating account: %v", err)
	}
	t.Cleanup(func() {
		_, _ = database.DeleteUser(pool, user.ID)
	})

	pixKey := &models.PixKey{UserID: user.ID, Type: models.PixKeyTypeEmail, Key: user.Email}
	if err := database.AddPixKey(pool, pixKey); err != nil {
		t.Fatalf("error adding pix key: %v", err)
	}
	return user
}

func balanceOf(t *testing.T, pool *pgxpool.Pool, id int) decimal.Decimal {
	t.Helper()
	user, err := database.GetUserByID(pool, id)
	if err != nil {
		t.Fatalf("error fetching user %d: %v", id, err)
	}
	if user == nil {
		t.Fatalf("user %d not found", id)
	}
	return user.Balance
}

func TestPixTransferHappyPath(t *testing.T) {
	pool := testPool(t)

	sender := createAccount(t, pool, "sender", "100.00")
	recipient := createAccount(t, pool, "recipient", "5.00")

	amount := decimal.RequireFromString("40.00")
	result, err := transfer.PixTransfer(context.Background(), pool, models.TransferRequest{
		FromUserID: sender.ID,
		ToPixKey:   recipient.Email,
		Amount:     amount,
	})
	if err != nil {
		t.Fatalf("error transferring: %v", err)
	}

	if result.FromUserID != sender.ID || result.ToUserID != recipient.ID {
		t.Errorf("wrong accounts in result: %+v", result)
	}

	senderAfter := balanceOf(t, pool, sender.ID)
	recipientAfter := balanceOf(t, pool, recipient.ID)
	if !senderAfter.Equal(decimal.RequireFromString("60.00")) {
		t.Errorf("sender balance: got %s, want 60.00", senderAfter)
	}
	if !recipientAfter.Equal(decimal.RequireFromString("45.00")) {
		t.Errorf("recipient balance: got %s, want 45.00", recipientAfter)
	}

	// Conservation: total money moved, none created or destroyed.
	totalBefore := sender.Balance.Add(recipient.Balance)
	if !senderAfter.Add(recipientAfter).Equal(totalBefore) {
		t.Errorf("conservation violated: before %s, after %s", totalBefore, senderAfter.Add(recipientAfter))
	}

	debit, err := database.GetTransactionByID(pool, result.DebitTransactionID)
	if err != nil || debit == nil {
		t.Fatalf("debit row missing: %v", err)
	}
	if debit.Type != models.TransactionTypeDebit || debit.UserID != sender.ID || !debit.Amount.Equal(amount) {
		t.Errorf("bad debit row: %+v", debit)
	}
	if debit.Details != fmt.Sprintf("Transferência PIX para %s", recipient.Name) {
		t.Errorf("unexpected debit details: %q", debit.Details)
	}

	credit, err := database.GetTransactionByID(pool, result.CreditTransactionID)
	if err != nil || credit == nil {
		t.Fatalf("credit row missing: %v", err)
	}
	if credit.Type != models.TransactionTypeCredit || credit.UserID != recipient.ID || !credit.Amount.Equal(amount) {
		t.Errorf("bad credit row: %+v", credit)
	}
	if credit.Details != fmt.Sprintf("Transferência PIX de %s", sender.Name) {
		t.Errorf("unexpected credit details: %q", credit.Details)
	}
}

func TestPixTransferInsufficientFunds(t *testing.T) {
	pool := testPool(t)

	sender := createAccount(t, pool, "sender", "10.00")
	recipient := createAccount(t, pool, "recipient", "0")

	_, err := transfer.PixTransfer(context.Background(), pool, models.TransferRequest{
		FromUserID: sender.ID,
		ToPixKey:   recipient.Email,
		Amount:     decimal.RequireFromString("50.00"),
	})
	if !errors.Is(err, models.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if !balanceOf(t, pool, sender.ID).Equal(decimal.RequireFromString("10.00")) {
		t.Error("sender balance must be unchanged")
	}
	if !balanceOf(t, pool, recipient.ID).Equal(decimal.RequireFromString("0")) {
		t.Error("recipient balance must be unchanged")
	}

	transactions, err := database.GetTransactionsByUserID(pool, sender.ID)
	if err != nil {
		t.Fatalf("error listing transactions: %v", err)
	}
	if len(transactions) != 0 {
		t.Errorf("expected no ledger rows, got %d", len(transactions))
	}
}

func TestPixTransferUnknownPixKey(t *testing.T) {
	pool := testPool(t)

	sender := createAccount(t, pool, "sender", "100.00")

	_, err := transfer.PixTransfer(context.Background(), pool, models.TransferRequest{
		FromUserID: sender.ID,
		ToPixKey:   "nobody@test.local",
		Amount:     decimal.RequireFromString("1.00"),
	})
	if !errors.Is(err, models.ErrPixKeyNotFound) {
		t.Fatalf("expected ErrPixKeyNotFound, got %v", err)
	}
	if !balanceOf(t, pool, sender.ID).Equal(decimal.RequireFromString("100.00")) {
		t.Error("sender balance must be unchanged")
	}
}

func TestPixTransferToSelf(t *testing.T) {
	pool := testPool(t)

	sender := createAccount(t, pool, "sender", "100.00")

	_, err := transfer.PixTransfer(context.Background(), pool, models.TransferRequest{
		FromUserID: sender.ID,
		ToPixKey:   sender.Email,
		Amount:     decimal.RequireFromString("1.00"),
	})
	if !errors.Is(err, models.ErrSelfTransfer) {
		t.Fatalf("expected ErrSelfTransfer, got %v", err)
	}
	if !balanceOf(t, pool, sender.ID).Equal(decimal.RequireFromString("100.00")) {
		t.Error("sender balance must be unchanged")
	}
}

func TestPixTransferSenderNotFound(t *testing.T) {
	pool := testPool(t)

	recipient := createAccount(t, pool, "recipient", "0")

	_, err := transfer.PixTransfer(context.Background(), pool, models.TransferRequest{
		FromUserID: 999999999,
		ToPixKey:   recipient.Email,
		Amount:     decimal.RequireFromString("1.00"),
	})
	if !errors.Is(err, models.ErrSenderNotFound) {
		t.Fatalf("expected ErrSenderNotFound, got %v", err)
	}
}

func TestPixTransferCommitPhaseFailureRollsBack(t *testing.T) {
	pool := testPool(t)

	sender := createAccount(t, pool, "sender", "100.00")
	recipient := createAccount(t, pool, "recipient", "0")

	// A canceled context makes the commit phase fail after validation
	// passed; nothing may have been applied.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := transfer.PixTransfer(ctx, pool, models.TransferRequest{
		FromUserID: sender.ID,
		ToPixKey:   recipient.Email,
		Amount:     decimal.RequireFromString("40.00"),
	})
	if !errors.Is(err, models.ErrTransferFailed) {
		t.Fatalf("expected ErrTransferFailed, got %v", err)
	}

	if !balanceOf(t, pool, sender.ID).Equal(decimal.RequireFromString("100.00")) {
		t.Error("sender balance must be unchanged after rollback")
	}
	if !balanceOf(t, pool, recipient.ID).Equal(decimal.RequireFromString("0")) {
		t.Error("recipient balance must be unchanged after rollback")
	}

	transactions, err := database.GetTransactionsByUserID(pool, sender.ID)
	if err != nil {
		t.Fatalf("error listing transactions: %v", err)
	}
	if len(transactions) != 0 {
		t.Errorf("expected no ledger rows, got %d", len(transactions))
	}
}

// Two transfers race on the same sender with only enough balance for one of
// them. Exactly one must commit and one must fail with insufficient funds.
func TestPixTransferConcurrentDebits(t *testing.T) {
	pool := testPool(t)

	sender := createAccount(t, pool, "sender", "100.00")
	first := createAccount(t, pool, "recipient", "0")
	second := createAccount(t, pool, "recipient", "0")

	amount := decimal.RequireFromString("100.00")
	recipients := []*models.User{first, second}
	errs := make([]error, 2)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = transfer.PixTransfer(context.Background(), pool, models.TransferRequest{
				FromUserID: sender.ID,
				ToPixKey:   recipients[i].Email,
				Amount:     amount,
			})
		}(i)
	}
	wg.Wait()

	var committed, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			committed++
		case errors.Is(err, models.ErrInsufficientFunds):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if committed != 1 || rejected != 1 {
		t.Fatalf("expected exactly one commit and one rejection, got %d commits and %d rejections", committed, rejected)
	}

	senderAfter := balanceOf(t, pool, sender.ID)
	if !senderAfter.Equal(decimal.Zero) {
		t.Errorf("sender balance: got %s, want 0", senderAfter)
	}
	if senderAfter.IsNegative() {
		t.Error("balance must never go negative")
	}

	credited := balanceOf(t, pool, first.ID).Add(balanceOf(t, pool, second.ID))
	if !credited.Equal(amount) {
		t.Errorf("credited total: got %s, want %s", credited, amount)
	}
}
