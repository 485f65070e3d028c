package service

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SchemaSeeder ensures the ledger schema exists on startup. Runs in a
// goroutine from the server bootstrap; safe to run repeatedly.
type SchemaSeeder struct {
	db *pgxpool.Pool
}

func NewSchemaSeeder(db *pgxpool.Pool) *SchemaSeeder {
	return &SchemaSeeder{db: db}
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		default_rate  NUMERIC(8,2) NOT NULL DEFAULT 0,
		is_active     BOOLEAN NOT NULL DEFAULT true,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS investors (
		id               TEXT PRIMARY KEY,
		company_id       TEXT NOT NULL REFERENCES companies(id),
		name             TEXT NOT NULL,
		address          TEXT NOT NULL DEFAULT '',
		email            TEXT NOT NULL DEFAULT '',
		phone            TEXT NOT NULL DEFAULT '',
		interest_rate    NUMERIC(8,2) NOT NULL DEFAULT 0,
		reinvesting      BOOLEAN NOT NULL DEFAULT true,
		start_date       DATE NOT NULL,
		is_active        BOOLEAN NOT NULL DEFAULT true,
		current_balance  NUMERIC(18,2) NOT NULL DEFAULT 0,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS investor_transactions (
		id                TEXT PRIMARY KEY,
		investor_id       TEXT NOT NULL REFERENCES investors(id),
		transaction_date  DATE NOT NULL,
		transaction_type  TEXT NOT NULL,
		amount            NUMERIC(18,2) NOT NULL DEFAULT 0,
		description       TEXT NOT NULL DEFAULT '',
		metadata          JSONB,
		seq               BIGINT NOT NULL,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_investor_transactions_order
		ON investor_transactions (investor_id, transaction_date, seq)`,
	`CREATE INDEX IF NOT EXISTS idx_investors_company
		ON investors (company_id)`,
}

// EnsureSchema creates the tables and indexes if they are missing.
func (s *SchemaSeeder) EnsureSchema(ctx context.Context) error {
	log.Println("🚀 Ensuring ledger schema...")

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range schemaStatements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}

	log.Println("✅ Ledger schema ready")
	return nil
}
