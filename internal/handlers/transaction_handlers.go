package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafaelmdutra/pix-ledger/internal/database"
	"github.com/rafaelmdutra/pix-ledger/models"
	"log"
	"net/http"
)

func ListTransactionsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		transactions, err := database.GetTransactionsByUserID(pool, callerID(c))
		if err != nil {
			log.Printf("error listing transactions: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list transactions"})
			return
		}
		c.JSON(http.StatusOK, transactions)
	}
}

func GetTransactionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		t, err := database.GetTransactionByID(pool, id)
		if err != nil {
			log.Printf("error fetching transaction %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch transaction"})
			return
		}
		if t == nil || t.UserID != callerID(c) {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// UpdateTransactionHandler edits details and category only. The financial
// fields of a ledger row are immutable once created.
func UpdateTransactionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		t, err := database.GetTransactionByID(pool, id)
		if err != nil {
			log.Printf("error fetching transaction %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch transaction"})
			return
		}
		if t == nil || t.UserID != callerID(c) {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return
		}

		var input struct {
			Details  *string                     `json:"details"`
			Category *models.TransactionCategory `json:"category"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		details := t.Details
		if input.Details != nil {
			details = *input.Details
		}
		category := t.Category
		if input.Category != nil {
			category = *input.Category
		}

		if err := database.UpdateTransactionDetails(pool, id, details, category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updated, err := database.GetTransactionByID(pool, id)
		if err != nil {
			log.Printf("error fetching transaction %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch transaction"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
