// Package ledger holds the balance and interest engine: pure functions
// over an investor's ordered transaction history. Nothing in this
// package touches storage, caches or clocks.
package ledger

import (
	"ledger-service/internal/domain"
	"ledger-service/internal/pkg"

	"github.com/shopspring/decimal"
)

// ComputeBalance replays every transaction in (date, seq) order and
// returns the final balance. Deterministic: the same ledger always
// produces the same result.
func ComputeBalance(l domain.Ledger) decimal.Decimal {
	sorted := make(domain.Ledger, len(l))
	copy(sorted, l)
	sorted.Sort()

	balance := decimal.Zero
	for _, t := range sorted {
		balance = t.Apply(balance)
	}
	return balance
}

// ComputeBalanceAt folds only transactions dated before the cutoff
// (on or before, when inclusive). Same-day entries are all in or all
// out together; intra-day slicing is the caller's business via seq.
func ComputeBalanceAt(l domain.Ledger, cutoff pkg.Date, inclusive bool) decimal.Decimal {
	sorted := make(domain.Ledger, len(l))
	copy(sorted, l)
	sorted.Sort()

	balance := decimal.Zero
	for _, t := range sorted {
		if t.Date.After(cutoff) {
			break
		}
		if !inclusive && t.Date.Equal(cutoff) {
			break
		}
		balance = t.Apply(balance)
	}
	return balance
}
