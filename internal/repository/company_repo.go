package repository

import (
	"context"
	"errors"
	"fmt"

	"ledger-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// CompanyRepository defines persistence operations for companies.
type CompanyRepository interface {
	Create(ctx context.Context, c *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context) ([]*domain.Company, error)
	Update(ctx context.Context, c *domain.Company) error
}

type companyRepo struct {
	db *pgxpool.Pool
}

// NewCompanyRepo creates a new company repository.
func NewCompanyRepo(db *pgxpool.Pool) CompanyRepository {
	return &companyRepo{db: db}
}

const companySelect = `
	SELECT id, name, description, default_rate::text, is_active, created_at, updated_at
	FROM companies`

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	var rate string
	err := row.Scan(&c.ID, &c.Name, &c.Description, &rate, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan company: %w", err)
	}
	c.DefaultRate, err = decimal.NewFromString(rate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse default_rate %q: %w", rate, err)
	}
	return &c, nil
}

func (r *companyRepo) Create(ctx context.Context, c *domain.Company) error {
	query := `
		INSERT INTO companies (id, name, description, default_rate, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		c.ID, c.Name, c.Description, c.DefaultRate.String(), c.IsActive,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: create company: %v", domain.ErrPersistenceFailure, err)
	}
	return nil
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	return scanCompany(r.db.QueryRow(ctx, companySelect+` WHERE id = $1`, id))
}

func (r *companyRepo) List(ctx context.Context) ([]*domain.Company, error) {
	rows, err := r.db.Query(ctx, companySelect+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: list companies: %v", domain.ErrPersistenceFailure, err)
	}
	defer rows.Close()

	var out []*domain.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *companyRepo) Update(ctx context.Context, c *domain.Company) error {
	query := `
		UPDATE companies
		SET name = $2, description = $3, default_rate = $4, is_active = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Description, c.DefaultRate.String(), c.IsActive)
	if err != nil {
		return fmt.Errorf("%w: update company: %v", domain.ErrPersistenceFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
