package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafaelmdutra/pix-ledger/internal/database"
	"github.com/rafaelmdutra/pix-ledger/internal/events"
	"github.com/rafaelmdutra/pix-ledger/internal/handlers"
)

func SetupRouter(pool *pgxpool.Pool, publisher events.Publisher, agents database.AgentStore) *gin.Engine {
	r := gin.Default()
	r.Use(CORSMiddleware())

	r.POST("/register", handlers.RegisterHandler(pool))
	r.POST("/login", handlers.LoginHandler(pool))

	r.GET("/users", handlers.GetUsersHandler(pool))
	r.GET("/users/:id", handlers.GetUserHandler(pool, agents))
	r.PUT("/users/:id", handlers.UpdateUserHandler(pool))
	r.DELETE("/users/:id", handlers.DeleteUserHandler(pool))

	auth := r.Group("/", handlers.AuthRequired())
	{
		auth.POST("/transfers", handlers.TransferHandler(pool, publisher))

		auth.POST("/pix-keys", handlers.AddPixKeyHandler(pool))
		auth.GET("/pix-keys", handlers.ListPixKeysHandler(pool))
		auth.DELETE("/pix-keys/:key", handlers.RemovePixKeyHandler(pool))

		auth.GET("/transactions", handlers.ListTransactionsHandler(pool))
		auth.GET("/transactions/:id", handlers.GetTransactionHandler(pool))
		auth.PUT("/transactions/:id", handlers.UpdateTransactionHandler(pool))

		auth.POST("/expenses", handlers.CreateExpenseHandler(pool))
		auth.GET("/expenses", handlers.ListExpensesHandler(pool))
		auth.GET("/expenses/:id", handlers.GetExpenseHandler(pool))
		auth.PUT("/expenses/:id", handlers.UpdateExpenseHandler(pool))
		auth.DELETE("/expenses/:id", handlers.DeleteExpenseHandler(pool))
	}

	return r
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "http://localhost:3000" || origin == "http://localhost:3001" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}
