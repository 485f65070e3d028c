package domain

import (
	"time"

	"ledger-service/internal/pkg"

	"github.com/shopspring/decimal"
)

// Investor is a private investor account within a company. The account
// owns its ordered transaction history; CurrentBalance and InterestRate
// are projections re-derived from that history on every mutation,
// never hand-maintained counters.
type Investor struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`

	// InterestRate is the percent-per-annum rate in effect today,
	// derived from rate-change history (seeded at account creation).
	InterestRate decimal.Decimal `json:"interest_rate"`
	// Reinvesting: earned interest stays in the account and compounds;
	// otherwise each accrual is paired with an interest-paid disbursement.
	Reinvesting bool     `json:"reinvesting"`
	StartDate   pkg.Date `json:"start_date"`
	IsActive    bool     `json:"is_active"`

	// CurrentBalance always equals a full replay of Transactions.
	CurrentBalance decimal.Decimal `json:"current_balance"`

	Transactions Ledger `json:"transactions"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// InvestorFilter narrows investor listings.
type InvestorFilter struct {
	CompanyID *string
	IsActive  *bool
	Name      *string
}

// InvestorDetails is the mutable contact/profile surface of an
// account. Ledger-affecting fields (initial amount, start date, rate)
// go through the transaction usecase instead.
type InvestorDetails struct {
	Name        *string
	Address     *string
	Email       *string
	Phone       *string
	Reinvesting *bool
	IsActive    *bool
}
