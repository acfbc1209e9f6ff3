package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafaelmdutra/pix-ledger/internal/database"
	"github.com/rafaelmdutra/pix-ledger/models"
	"github.com/shopspring/decimal"
	"log"
	"net/http"
	"time"
)

type expenseInput struct {
	IsRecurring   *bool                 `json:"is_recurring_payment"`
	IsActive      *bool                 `json:"is_active"`
	Amount        *decimal.Decimal      `json:"amount"`
	Description   *string               `json:"description"`
	ExecutionDate *time.Time            `json:"execution_date"`
	Status        *models.ExpenseStatus `json:"status"`
}

func CreateExpenseHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input expenseInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if input.Amount == nil || input.Description == nil || input.ExecutionDate == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount, description and execution_date are required"})
			return
		}

		expense := &models.Expense{
			UserID:        callerID(c),
			IsActive:      true,
			Amount:        *input.Amount,
			Description:   *input.Description,
			ExecutionDate: *input.ExecutionDate,
			Status:        models.ExpenseStatusPending,
		}
		if input.IsRecurring != nil {
			expense.IsRecurring = *input.IsRecurring
		}
		if input.IsActive != nil {
			expense.IsActive = *input.IsActive
		}
		if input.Status != nil {
			expense.Status = *input.Status
		}

		if err := database.CreateExpense(pool, expense); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, expense)
	}
}

func ListExpensesHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := callerID(c)

		var expenses []models.Expense
		var err error
		if status := c.Query("status"); status != "" {
			expenses, err = database.GetExpensesByUserIDAndStatus(pool, userID, models.ExpenseStatus(status))
		} else {
			expenses, err = database.GetExpensesByUserID(pool, userID)
		}
		if err != nil {
			log.Printf("error listing expenses: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, expenses)
	}
}

// ownExpense loads the expense and enforces that it belongs to the caller.
func ownExpense(c *gin.Context, pool *pgxpool.Pool) (*models.Expense, bool) {
	id, ok := pathID(c)
	if !ok {
		return nil, false
	}

	expense, err := database.GetExpenseByID(pool, id)
	if err != nil {
		log.Printf("error fetching expense %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch expense"})
		return nil, false
	}
	if expense == nil || expense.UserID != callerID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return nil, false
	}
	return expense, true
}

func GetExpenseHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		expense, ok := ownExpense(c, pool)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, expense)
	}
}

func UpdateExpenseHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		expense, ok := ownExpense(c, pool)
		if !ok {
			return
		}

		var input expenseInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		if input.IsRecurring != nil {
			expense.IsRecurring = *input.IsRecurring
		}
		if input.IsActive != nil {
			expense.IsActive = *input.IsActive
		}
		if input.Amount != nil {
			expense.Amount = *input.Amount
		}
		if input.Description != nil {
			expense.Description = *input.Description
		}
		if input.ExecutionDate != nil {
			expense.ExecutionDate = *input.ExecutionDate
		}
		if input.Status != nil {
			expense.Status = *input.Status
		}

		if err := database.UpdateExpense(pool, expense); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, expense)
	}
}

func DeleteExpenseHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		expense, ok := ownExpense(c, pool)
		if !ok {
			return
		}

		deleted, err := database.DeleteExpense(pool, expense.ID)
		if err != nil {
			log.Printf("error deleting expense %d: %v", expense.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete expense"})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
