package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafaelmdutra/pix-ledger/internal/database"
	"github.com/rafaelmdutra/pix-ledger/models"
	"log"
	"net/http"
)

func AddPixKeyHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Type models.PixKeyType `json:"type"`
			Key  string            `json:"key"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		pixKey := &models.PixKey{
			UserID: callerID(c),
			Type:   input.Type,
			Key:    input.Key,
		}
		if err := database.AddPixKey(pool, pixKey); err != nil {
			switch err {
			case models.ErrPixKeyTaken:
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			case models.ErrEmptyPixKey:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				log.Printf("error adding pix key: %v", err)
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(http.StatusCreated, pixKey)
	}
}

func ListPixKeysHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		keys, err := database.ListPixKeys(pool, callerID(c))
		if err != nil {
			log.Printf("error listing pix keys: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list pix keys"})
			return
		}
		c.JSON(http.StatusOK, keys)
	}
}

func RemovePixKeyHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")
		removed, err := database.RemovePixKey(pool, callerID(c), key)
		if err != nil {
			log.Printf("error removing pix key: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove pix key"})
			return
		}
		if !removed {
			c.JSON(http.StatusNotFound, gin.H{"error": "pix key not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
