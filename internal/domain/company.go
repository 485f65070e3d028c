package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company groups investor accounts. DefaultRate is applied only when
// an account is created without an explicit rate; it is never consulted
// afterwards.
type Company struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	DefaultRate decimal.Decimal `json:"default_rate"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}
