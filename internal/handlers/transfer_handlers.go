package handlers

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafaelmdutra/pix-ledger/internal/events"
	"github.com/rafaelmdutra/pix-ledger/internal/transfer"
	"github.com/rafaelmdutra/pix-ledger/models"
	"github.com/shopspring/decimal"
	"log"
	"net/http"
)

// TransferHandler runs a PIX transfer for the authenticated caller and, on
// success, publishes a transfer_completed event. Publishing is best effort:
// a broker failure is logged, the committed transfer stands.
func TransferHandler(pool *pgxpool.Pool, publisher events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ToPixKey    string          `json:"to_pix_key"`
			Amount      decimal.Decimal `json:"amount"`
			Description string          `json:"description"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		req := models.TransferRequest{
			FromUserID:  callerID(c),
			ToPixKey:    input.ToPixKey,
			Amount:      input.Amount,
			Description: input.Description,
		}

		result, err := transfer.PixTransfer(c.Request.Context(), pool, req)
		if err != nil {
			c.JSON(transferStatus(err), gin.H{"error": err.Error()})
			return
		}

		go func() {
			if err := publisher.Publish(events.NewTransferCompleted(result)); err != nil {
				log.Printf("error publishing transfer event: %v", err)
			}
		}()

		c.JSON(http.StatusCreated, result)
	}
}

func transferStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidSender),
		errors.Is(err, models.ErrEmptyPixKey),
		errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrSelfTransfer):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrSenderNotFound),
		errors.Is(err, models.ErrPixKeyNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
