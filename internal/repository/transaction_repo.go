package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ledger-service/internal/domain"
	"ledger-service/internal/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// TransactionRepository defines persistence operations for ledger
// rows. Each row persists date, type, amount, description, metadata
// and the insertion sequence, so the exact original ordering of
// same-day entries survives reload.
type TransactionRepository interface {
	ListByInvestor(ctx context.Context, investorID string) (domain.Ledger, error)
	ListByInvestorTx(ctx context.Context, investorID string, tx pgx.Tx) (domain.Ledger, error)
	Insert(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error
	// ReplaceAll swaps the investor's whole ledger inside the given
	// transaction. Cascaded mutations persist through this so the
	// write is a single atomic unit.
	ReplaceAll(ctx context.Context, tx pgx.Tx, investorID string, l domain.Ledger) error
}

type transactionRepo struct {
	db *pgxpool.Pool
}

// NewTransactionRepo creates a new transaction repository.
func NewTransactionRepo(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

const transactionSelect = `
	SELECT id, investor_id, transaction_date, transaction_type,
	       amount::text, description, metadata, seq, created_at
	FROM investor_transactions`

type rowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *transactionRepo) ListByInvestor(ctx context.Context, investorID string) (domain.Ledger, error) {
	return listTransactions(ctx, r.db, investorID)
}

func (r *transactionRepo) ListByInvestorTx(ctx context.Context, investorID string, tx pgx.Tx) (domain.Ledger, error) {
	return listTransactions(ctx, tx, investorID)
}

func listTransactions(ctx context.Context, q rowQuerier, investorID string) (domain.Ledger, error) {
	rows, err := q.Query(ctx,
		transactionSelect+` WHERE investor_id = $1 ORDER BY transaction_date, seq`,
		investorID)
	if err != nil {
		return nil, fmt.Errorf("%w: list transactions: %v", domain.ErrPersistenceFailure, err)
	}
	defer rows.Close()

	var l domain.Ledger
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		l = append(l, t)
	}
	return l, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	var date time.Time
	var amount string
	var meta []byte

	err := row.Scan(
		&t.ID, &t.InvestorID, &date, &t.Kind,
		&amount, &t.Description, &meta, &t.Seq, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	t.Date = pkg.DateOf(date)
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("failed to parse amount %q: %w", amount, err)
	}
	if len(meta) > 0 {
		var m domain.TransactionMetadata
		if err := json.Unmarshal(meta, &m); err != nil {
			return nil, fmt.Errorf("failed to decode transaction metadata: %w", err)
		}
		if !m.IsEmpty() {
			t.Metadata = &m
		}
	}
	return &t, nil
}

func encodeMetadata(t *domain.Transaction) ([]byte, error) {
	if t.Metadata.IsEmpty() {
		return nil, nil
	}
	b, err := json.Marshal(t.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction metadata: %w", err)
	}
	return b, nil
}

func (r *transactionRepo) Insert(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	meta, err := encodeMetadata(t)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO investor_transactions
			(id, investor_id, transaction_date, transaction_type, amount, description, metadata, seq)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`
	err = tx.QueryRow(ctx, query,
		t.ID, t.InvestorID, t.Date.Time(), string(t.Kind),
		t.Amount.String(), t.Description, meta, t.Seq,
	).Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: insert transaction: %v", domain.ErrPersistenceFailure, err)
	}
	return nil
}

func (r *transactionRepo) ReplaceAll(ctx context.Context, tx pgx.Tx, investorID string, l domain.Ledger) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM investor_transactions WHERE investor_id = $1`, investorID); err != nil {
		return fmt.Errorf("%w: clear ledger: %v", domain.ErrPersistenceFailure, err)
	}

	batch := &pgx.Batch{}
	for _, t := range l {
		meta, err := encodeMetadata(t)
		if err != nil {
			return err
		}
		createdAt := t.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		batch.Queue(`
			INSERT INTO investor_transactions
				(id, investor_id, transaction_date, transaction_type, amount, description, metadata, seq, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			t.ID, investorID, t.Date.Time(), string(t.Kind),
			t.Amount.String(), t.Description, meta, t.Seq, createdAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range l {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("%w: rewrite ledger: %v", domain.ErrPersistenceFailure, err)
		}
	}
	return nil
}
