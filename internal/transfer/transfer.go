// Package transfer implements the PIX transfer engine: one atomic unit that
// debits the sender, credits the recipient and appends the two ledger rows.
package transfer

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafaelmdutra/pix-ledger/internal/database"
	"github.com/rafaelmdutra/pix-ledger/models"
	"time"
)

// PixTransfer moves money between two accounts, the recipient addressed by
// pix key. Validation failures come back as the sentinel errors in models
// with no side effects; any failure after the commit phase starts rolls the
// whole unit back and comes back wrapped in models.ErrTransferFailed.
func PixTransfer(ctx context.Context, pool *pgxpool.Pool, req models.TransferRequest) (*models.TransferResult, error) {
	if req.FromUserID <= 0 {
		return nil, models.ErrInvalidSender
	}
	if req.ToPixKey == "" {
		return nil, models.ErrEmptyPixKey
	}
	if !req.Amount.IsPositive() {
		return nil, models.ErrInvalidAmount
	}

	fromUser, err := database.GetUserByID(pool, req.FromUserID)
	if err != nil {
		return nil, err
	}
	if fromUser == nil {
		return nil, models.ErrSenderNotFound
	}

	toUser, err := database.GetUserByPixKey(pool, req.ToPixKey)
	if err != nil {
		return nil, err
	}
	if toUser == nil {
		return nil, models.ErrPixKeyNotFound
	}

	if fromUser.ID == toUser.ID {
		return nil, models.ErrSelfTransfer
	}

	// Advisory check on the unlocked read; the one that counts happens
	// again below against the locked rows.
	if fromUser.Balance.LessThan(req.Amount) {
		return nil, models.ErrInsufficientFunds
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransferFailed, err)
	}
	defer tx.Rollback(ctx)

	// Lock both rows in ascending id order so two transfers touching the
	// same pair in opposite directions cannot deadlock.
	firstID, secondID := fromUser.ID, toUser.ID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}
	locked := make(map[int]*models.User, 2)
	for _, id := range []int{firstID, secondID} {
		u, err := database.GetUserForUpdate(tx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrTransferFailed, err)
		}
		if u == nil {
			return nil, fmt.Errorf("%w: account %d disappeared", models.ErrTransferFailed, id)
		}
		locked[id] = u
	}
	fromUser, toUser = locked[fromUser.ID], locked[toUser.ID]

	// Authoritative solvency check. A concurrent transfer that committed
	// between the advisory read and the lock shows up here.
	if fromUser.Balance.LessThan(req.Amount) {
		return nil, models.ErrInsufficientFunds
	}

	newFromBalance := fromUser.Balance.Sub(req.Amount)
	newToBalance := toUser.Balance.Add(req.Amount)

	if err := database.UpdateUserBalance(tx, fromUser.ID, newFromBalance); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransferFailed, err)
	}
	if err := database.UpdateUserBalance(tx, toUser.ID, newToBalance); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransferFailed, err)
	}

	now := time.Now()

	debitDetails := req.Description
	if debitDetails == "" {
		debitDetails = fmt.Sprintf("Transferência PIX para %s", toUser.Name)
	}
	debit := &models.Transaction{
		Type:     models.TransactionTypeDebit,
		Date:     now,
		Amount:   req.Amount,
		Details:  debitDetails,
		UserID:   fromUser.ID,
		Category: models.CategoryOther,
	}
	if err := database.CreateTransactionTx(tx, debit); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransferFailed, err)
	}

	creditDetails := req.Description
	if creditDetails == "" {
		creditDetails = fmt.Sprintf("Transferência PIX de %s", fromUser.Name)
	}
	credit := &models.Transaction{
		Type:     models.TransactionTypeCredit,
		Date:     now,
		Amount:   req.Amount,
		Details:  creditDetails,
		UserID:   toUser.ID,
		Category: models.CategoryOther,
	}
	if err := database.CreateTransactionTx(tx, credit); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransferFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransferFailed, err)
	}

	return &models.TransferResult{
		FromUserID:          fromUser.ID,
		ToUserID:            toUser.ID,
		Amount:              req.Amount,
		Description:         req.Description,
		DebitTransactionID:  debit.ID,
		CreditTransactionID: credit.ID,
		CreatedAt:           now,
	}, nil
}
