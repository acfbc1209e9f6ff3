package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafaelmdutra/pix-ledger/internal/database"
	"github.com/rafaelmdutra/pix-ledger/models"
	"log"
	"net/http"
	"strconv"
)

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func GetUsersHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := database.GetAllUsers(pool)
		if err != nil {
			log.Printf("error listing users: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

func GetUserHandler(pool *pgxpool.Pool, agents database.AgentStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		user, err := database.GetUserByID(pool, id)
		if err != nil {
			log.Printf("error fetching user %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user"})
			return
		}
		if user == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		agent := database.ResolveAgent(c.Request.Context(), agents, user)
		c.JSON(http.StatusOK, gin.H{"user": user, "ia_agent": agent})
	}
}

func UpdateUserHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		existing, err := database.GetUserByID(pool, id)
		if err != nil {
			log.Printf("error fetching user %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user"})
			return
		}
		if existing == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		var input struct {
			Name          *string        `json:"name"`
			Email         *string        `json:"email"`
			CreditScore   *int           `json:"credit_score"`
			Configuration map[string]any `json:"configuration"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		if input.Name != nil {
			existing.Name = *input.Name
		}
		if input.Email != nil {
			existing.Email = *input.Email
		}
		if input.CreditScore != nil {
			if *input.CreditScore < 0 || *input.CreditScore > 1000 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "credit score must be between 0 and 1000"})
				return
			}
			existing.CreditScore = *input.CreditScore
		}
		if input.Configuration != nil {
			existing.Configuration = input.Configuration
		}

		if err := database.UpdateUser(pool, existing); err != nil {
			if err == models.ErrEmailTaken {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			log.Printf("error updating user %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
			return
		}
		c.JSON(http.StatusOK, existing)
	}
}

func DeleteUserHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		deleted, err := database.DeleteUser(pool, id)
		if err != nil {
			log.Printf("error deleting user %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
