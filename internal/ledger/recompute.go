package ledger

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"ledger-service/internal/domain"
	"ledger-service/internal/pkg"

	"github.com/shopspring/decimal"
)

// InterestStrategy selects the formula a cascade uses to reprice an
// accrual. The two strategies coexist on purpose: statements already
// issued depend on which formula produced their figures, so they are
// never unified.
type InterestStrategy int

const (
	// FlatQuarterly prices each accrual as balance * rate/100 / 4.
	// Used by inserts, deletes and rate changes.
	FlatQuarterly InterestStrategy = iota
	// DayCounted prices each accrual over its calendar month as
	// balance * rate/100 * daysInMonth/365. Used only by the
	// this-and-future edit path.
	DayCounted
)

// rateMention matches the "@ 12%" rate tag embedded in interest
// descriptions, so cascades can keep the text in sync with the rate.
var rateMention = regexp.MustCompile(`@\s*\d+(\.\d+)?%`)

// RecomputeFutureInterest reprices every interest-earned transaction
// dated strictly after the anchor date. The walk is strictly
// left-to-right over the (date, seq) order: each repriced accrual is
// folded into the running balance before the next one is priced, so
// reinvested interest compounds correctly.
//
// Every other kind keeps its amount and only participates in the fold.
// The input ledger is not modified; the returned ledger is a deep copy.
// The operation is idempotent: amounts are overwritten from the running
// balance, never incremented.
func RecomputeFutureInterest(l domain.Ledger, anchor pkg.Date, rate RateSource, strategy InterestStrategy) domain.Ledger {
	return recomputeWhere(l, func(t *domain.Transaction) bool {
		return t.Date.After(anchor)
	}, rate, strategy)
}

// RecomputeAfterPosition reprices interest entries ordered strictly
// after the (date, seq) position of an edited transaction. The
// this-and-future edit path uses this: its scope is "everything after
// this row", including later rows on the same day.
func RecomputeAfterPosition(l domain.Ledger, date pkg.Date, seq int64, rate RateSource, strategy InterestStrategy) domain.Ledger {
	return recomputeWhere(l, func(t *domain.Transaction) bool {
		if !t.Date.Equal(date) {
			return t.Date.After(date)
		}
		return t.Seq > seq
	}, rate, strategy)
}

func recomputeWhere(l domain.Ledger, after func(*domain.Transaction) bool, rate RateSource, strategy InterestStrategy) domain.Ledger {
	out := l.Clone()
	out.Sort()

	now := time.Now()
	balance := decimal.Zero
	for _, t := range out {
		if t.Kind != domain.KindInterestEarned || !after(t) || isDisbursement(t) {
			balance = t.Apply(balance)
			continue
		}

		effective := rate(t.Date)
		var priced decimal.Decimal
		switch strategy {
		case DayCounted:
			priced = DayCountedInterest(balance, effective, t.Date.DaysInMonth())
		default:
			priced = QuarterlyInterest(balance, effective)
		}
		priced = RoundMoney(priced)

		if !priced.Equal(t.Amount) {
			if t.Metadata == nil {
				t.Metadata = &domain.TransactionMetadata{}
			}
			if !t.Metadata.Recalculated {
				orig := t.Amount
				t.Metadata.OriginalAmount = &orig
			}
			t.Metadata.Recalculated = true
			t.Metadata.RecalculatedAt = &now
			t.Amount = priced
		}
		t.Description = retagRate(t.Description, effective)

		balance = balance.Add(priced)
	}
	return out
}

// isDisbursement guards accruals that were immediately paid out; the
// edit cascade has never repriced those.
func isDisbursement(t *domain.Transaction) bool {
	return strings.Contains(t.Description, "Disbursement")
}

// retagRate rewrites the embedded "@ N%" mention, if present.
func retagRate(description string, rate decimal.Decimal) string {
	if !rateMention.MatchString(description) {
		return description
	}
	return rateMention.ReplaceAllString(description, fmt.Sprintf("@ %s%%", rate.String()))
}
