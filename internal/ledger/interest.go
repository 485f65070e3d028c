package ledger

import (
	"ledger-service/internal/pkg"

	"github.com/shopspring/decimal"
)

var (
	hundred     = decimal.NewFromInt(100)
	four        = decimal.NewFromInt(4)
	daysPerYear = decimal.NewFromInt(365)
)

// QuarterlyInterest is the canonical one-click formula:
// balance * rate/100 / 4. It assumes a full quarter elapsed and does
// no day counting.
func QuarterlyInterest(balanceAtQuarterStart, annualRatePct decimal.Decimal) decimal.Decimal {
	return balanceAtQuarterStart.Mul(annualRatePct).Div(hundred).Div(four)
}

// ProratedInterest is the day-counted variant for partial periods:
// principal * rate/100 * days/365, where days counts both endpoints.
// A deposit accrues interest on its own first day, so start == end
// yields exactly one day.
func ProratedInterest(principal, annualRatePct decimal.Decimal, start, end pkg.Date) decimal.Decimal {
	days := decimal.NewFromInt(int64(start.DaysBetween(end) + 1))
	return principal.Mul(annualRatePct).Div(hundred).Mul(days).Div(daysPerYear)
}

// DayCountedInterest prices one accrual over a given number of days:
// balance * rate/100 * days/365. Used by the this-and-future edit
// cascade, which prices each accrual over its calendar month.
func DayCountedInterest(balance, annualRatePct decimal.Decimal, days int) decimal.Decimal {
	return balance.Mul(annualRatePct).Div(hundred).
		Mul(decimal.NewFromInt(int64(days))).Div(daysPerYear)
}

// RoundMoney applies the single rounding rule of the engine: two
// fractional digits, applied only when an amount is materialized for
// persistence or display, never mid-computation.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
