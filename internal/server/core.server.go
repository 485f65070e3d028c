package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"ledger-service/internal/config"
	rest "ledger-service/internal/handler/rest"
	publisher "ledger-service/internal/pub"
	"ledger-service/internal/repository"
	"ledger-service/internal/service"
	"ledger-service/internal/usecase"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// NewLedgerServer wires the service and returns the HTTP server ready to run.
func NewLedgerServer(cfg config.AppConfig) *http.Server {
	// --- DB connection ---
	dbpool, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// --- Redis client ---
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	// --- Kafka writer ---
	kafkaWriter := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}

	// --- Repositories ---
	companyRepo := repository.NewCompanyRepo(dbpool)
	investorRepo := repository.NewInvestorRepo(dbpool)
	txRepo := repository.NewTransactionRepo(dbpool)

	// --- Event publisher ---
	eventPub := publisher.NewLedgerEventPublisher(rdb)

	// --- Usecases ---
	accountUC := usecase.NewAccountUsecase(companyRepo, investorRepo, txRepo, rdb)
	txUC := usecase.NewTransactionUsecase(investorRepo, txRepo, rdb, kafkaWriter, eventPub)
	statementUC := usecase.NewStatementUsecase(investorRepo, txRepo, rdb)

	// --- Schema bootstrap (non-blocking) ---
	seeder := service.NewSchemaSeeder(dbpool)
	go func() {
		if err := seeder.EnsureSchema(context.Background()); err != nil {
			log.Printf("⚠️  Schema bootstrap failed: %v", err)
		}
	}()

	// --- REST handler ---
	ledgerHandler := rest.NewLedgerRestHandler(accountUC, txUC, statementUC)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      ledgerHandler.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
