package main

import (
	"context"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafaelmdutra/pix-ledger/internal/database"
	"github.com/rafaelmdutra/pix-ledger/internal/events"
	"github.com/rafaelmdutra/pix-ledger/internal/routes"
	"github.com/robfig/cron/v3"
	"log"
	"os"
	"strings"
)

// ScheduleExpenseExecution runs the due-expense processor every day.
func ScheduleExpenseExecution(pool *pgxpool.Pool) {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		if err := database.ProcessDueExpenses(pool); err != nil {
			log.Printf("error processing due expenses: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("error scheduling expense execution: %v", err)
	}
	c.Start()
}

func newPublisher() events.Publisher {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		log.Println("KAFKA_BROKERS not set, transfer events disabled")
		return events.NopPublisher{}
	}
	return events.NewKafkaPublisher(strings.Split(brokers, ","))
}

func main() {
	pool, err := database.ConnectPool(context.Background())
	if err != nil {
		log.Fatalf("error connecting to database: %v", err)
	}
	defer pool.Close()

	if err := database.InitSchema(pool); err != nil {
		log.Fatalf("error initializing schema: %v", err)
	}

	ScheduleExpenseExecution(pool)

	r := routes.SetupRouter(pool, newPublisher(), database.NoAgentStore{})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
