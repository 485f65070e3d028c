package domain

import (
	"ledger-service/internal/pkg"

	"github.com/shopspring/decimal"
)

// StatementRow is one display line of an account statement: the
// transaction plus the running balance after it. BalanceAfter is nil
// for rate-change rows, which are balance-neutral markers.
type StatementRow struct {
	Transaction  *Transaction     `json:"transaction"`
	BalanceAfter *decimal.Decimal `json:"balance_after,omitempty"`
}

// PeriodSummary is the activity summary for a statement period.
// EndingBalance is definitionally opening + investments + interest −
// withdrawals, and must equal a balance replay through the period end.
type PeriodSummary struct {
	PeriodStart    pkg.Date        `json:"period_start"`
	PeriodEnd      pkg.Date        `json:"period_end"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Investments    decimal.Decimal `json:"investments"`
	InterestEarned decimal.Decimal `json:"interest_earned"`
	Withdrawals    decimal.Decimal `json:"withdrawals"`
	EndingBalance  decimal.Decimal `json:"ending_balance"`
}

// AccountStatement is the full point-in-time statement for an investor.
type AccountStatement struct {
	InvestorID     string          `json:"investor_id"`
	InvestorName   string          `json:"investor_name"`
	CompanyID      string          `json:"company_id"`
	Rows           []*StatementRow `json:"rows"`
	Summary        *PeriodSummary  `json:"summary"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	TotalPrincipal decimal.Decimal `json:"total_principal"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// WeightedRatePreview describes the day-weighted blended rate for an
// upcoming quarter that contains a scheduled rate change. Display
// only; stored interest amounts are never derived from it.
type WeightedRatePreview struct {
	Quarter      string          `json:"quarter"`
	QuarterStart pkg.Date        `json:"quarter_start"`
	QuarterEnd   pkg.Date        `json:"quarter_end"`
	ChangeDate   pkg.Date        `json:"change_date"`
	OldRate      decimal.Decimal `json:"old_rate"`
	NewRate      decimal.Decimal `json:"new_rate"`
	DaysBefore   int             `json:"days_before"`
	DaysAfter    int             `json:"days_after"`
	TotalDays    int             `json:"total_days"`
	WeightedRate decimal.Decimal `json:"weighted_rate"`
}
