package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger-service/internal/domain"
	"ledger-service/internal/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// InvestorRepository defines persistence operations for investor
// accounts. The investor row carries the derived snapshot fields
// (current_balance, interest_rate); the transaction rows stay the
// source of truth.
type InvestorRepository interface {
	Create(ctx context.Context, inv *domain.Investor, tx pgx.Tx) error
	GetByID(ctx context.Context, id string) (*domain.Investor, error)
	GetByIDTx(ctx context.Context, id string, tx pgx.Tx) (*domain.Investor, error)
	List(ctx context.Context, f *domain.InvestorFilter) ([]*domain.Investor, error)
	UpdateDetails(ctx context.Context, id string, d *domain.InvestorDetails) error
	// UpdateSnapshot refreshes the derived balance/rate/start-date
	// projection inside the same transaction as the ledger write.
	UpdateSnapshot(ctx context.Context, tx pgx.Tx, id string, balance, rate decimal.Decimal, startDate pkg.Date) error
	Archive(ctx context.Context, id string) error

	BeginTx(ctx context.Context) (pgx.Tx, error)
}

type investorRepo struct {
	db *pgxpool.Pool
}

// NewInvestorRepo creates a new investor repository.
func NewInvestorRepo(db *pgxpool.Pool) InvestorRepository {
	return &investorRepo{db: db}
}

func (r *investorRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %v", domain.ErrPersistenceFailure, err)
	}
	return tx, nil
}

const investorSelect = `
	SELECT id, company_id, name, address, email, phone,
	       interest_rate::text, reinvesting, start_date, is_active,
	       current_balance::text, created_at, updated_at
	FROM investors`

func scanInvestor(row pgx.Row) (*domain.Investor, error) {
	var inv domain.Investor
	var rate, balance string
	var startDate time.Time

	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.Name, &inv.Address, &inv.Email, &inv.Phone,
		&rate, &inv.Reinvesting, &startDate, &inv.IsActive,
		&balance, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan investor: %w", err)
	}

	inv.StartDate = pkg.DateOf(startDate)
	if inv.InterestRate, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("failed to parse interest_rate %q: %w", rate, err)
	}
	if inv.CurrentBalance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("failed to parse current_balance %q: %w", balance, err)
	}
	return &inv, nil
}

func (r *investorRepo) Create(ctx context.Context, inv *domain.Investor, tx pgx.Tx) error {
	query := `
		INSERT INTO investors
			(id, company_id, name, address, email, phone,
			 interest_rate, reinvesting, start_date, is_active, current_balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`
	err := tx.QueryRow(ctx, query,
		inv.ID, inv.CompanyID, inv.Name, inv.Address, inv.Email, inv.Phone,
		inv.InterestRate.String(), inv.Reinvesting, inv.StartDate.Time(), inv.IsActive,
		inv.CurrentBalance.String(),
	).Scan(&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: create investor: %v", domain.ErrPersistenceFailure, err)
	}
	return nil
}

func (r *investorRepo) GetByID(ctx context.Context, id string) (*domain.Investor, error) {
	return scanInvestor(r.db.QueryRow(ctx, investorSelect+` WHERE id = $1`, id))
}

func (r *investorRepo) GetByIDTx(ctx context.Context, id string, tx pgx.Tx) (*domain.Investor, error) {
	return scanInvestor(tx.QueryRow(ctx, investorSelect+` WHERE id = $1 FOR UPDATE`, id))
}

func (r *investorRepo) List(ctx context.Context, f *domain.InvestorFilter) ([]*domain.Investor, error) {
	query := investorSelect + ` WHERE 1=1`
	args := []any{}
	n := 1
	if f != nil {
		if f.CompanyID != nil {
			query += fmt.Sprintf(" AND company_id = $%d", n)
			args = append(args, *f.CompanyID)
			n++
		}
		if f.IsActive != nil {
			query += fmt.Sprintf(" AND is_active = $%d", n)
			args = append(args, *f.IsActive)
			n++
		}
		if f.Name != nil {
			query += fmt.Sprintf(" AND name ILIKE $%d", n)
			args = append(args, "%"+*f.Name+"%")
			n++
		}
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list investors: %v", domain.ErrPersistenceFailure, err)
	}
	defer rows.Close()

	var out []*domain.Investor
	for rows.Next() {
		inv, err := scanInvestor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *investorRepo) UpdateDetails(ctx context.Context, id string, d *domain.InvestorDetails) error {
	sets := []string{"updated_at = now()"}
	args := []any{id}
	n := 2

	add := func(col string, v any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, n))
		args = append(args, v)
		n++
	}
	if d.Name != nil {
		add("name", *d.Name)
	}
	if d.Address != nil {
		add("address", *d.Address)
	}
	if d.Email != nil {
		add("email", *d.Email)
	}
	if d.Phone != nil {
		add("phone", *d.Phone)
	}
	if d.Reinvesting != nil {
		add("reinvesting", *d.Reinvesting)
	}
	if d.IsActive != nil {
		add("is_active", *d.IsActive)
	}

	query := "UPDATE investors SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += " WHERE id = $1"

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: update investor details: %v", domain.ErrPersistenceFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *investorRepo) UpdateSnapshot(ctx context.Context, tx pgx.Tx, id string, balance, rate decimal.Decimal, startDate pkg.Date) error {
	query := `
		UPDATE investors
		SET current_balance = $2, interest_rate = $3, start_date = $4, updated_at = now()
		WHERE id = $1`
	tag, err := tx.Exec(ctx, query, id, balance.String(), rate.String(), startDate.Time())
	if err != nil {
		return fmt.Errorf("%w: update investor snapshot: %v", domain.ErrPersistenceFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *investorRepo) Archive(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE investors SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: archive investor: %v", domain.ErrPersistenceFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
