// Package projection builds read-only views by replaying a ledger.
// Everything here is pure: a transaction list plus a date range in,
// display structures out.
package projection

import (
	"ledger-service/internal/domain"
	"ledger-service/internal/ledger"
	"ledger-service/internal/pkg"

	"github.com/shopspring/decimal"
)

// RunningBalanceRows produces one display row per transaction with the
// balance after it. Rate-change rows carry no balance; they are
// balance-neutral markers in the table.
func RunningBalanceRows(l domain.Ledger) []*domain.StatementRow {
	sorted := make(domain.Ledger, len(l))
	copy(sorted, l)
	sorted.Sort()

	rows := make([]*domain.StatementRow, 0, len(sorted))
	balance := decimal.Zero
	for _, t := range sorted {
		row := &domain.StatementRow{Transaction: t}
		if t.Kind != domain.KindRateChange {
			balance = t.Apply(balance)
			after := balance
			row.BalanceAfter = &after
		}
		rows = append(rows, row)
	}
	return rows
}

// Summary computes the activity summary for [start, end]. Opening is
// the balance strictly before start; the three deltas absorb every
// balance-moving kind within the period (contributed capital, interest
// earned, money out), so ending = opening + investments + interest −
// withdrawals holds definitionally and a replay through end must
// reproduce it.
func Summary(l domain.Ledger, start, end pkg.Date) *domain.PeriodSummary {
	s := &domain.PeriodSummary{
		PeriodStart:    start,
		PeriodEnd:      end,
		OpeningBalance: ledger.ComputeBalanceAt(l, start, false),
		Investments:    decimal.Zero,
		InterestEarned: decimal.Zero,
		Withdrawals:    decimal.Zero,
	}
	for _, t := range l {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		switch t.Kind {
		case domain.KindInitial, domain.KindInvestment, domain.KindBonus, domain.KindAdjustment:
			s.Investments = s.Investments.Add(t.Amount)
		case domain.KindInterestEarned:
			s.InterestEarned = s.InterestEarned.Add(t.Amount)
		case domain.KindWithdrawal, domain.KindInterestPaid, domain.KindFee:
			s.Withdrawals = s.Withdrawals.Add(t.Amount)
		}
	}
	s.EndingBalance = s.OpeningBalance.Add(s.Investments).Add(s.InterestEarned).Sub(s.Withdrawals)
	return s
}

// TotalInterest sums all interest-earned amounts over the lifetime of
// the account.
func TotalInterest(l domain.Ledger) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range l {
		if t.Kind == domain.KindInterestEarned {
			sum = sum.Add(t.Amount)
		}
	}
	return sum
}

// YearlyInterest sums interest-earned amounts dated within a year.
func YearlyInterest(l domain.Ledger, year int) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range l {
		if t.Kind == domain.KindInterestEarned && t.Date.Year() == year {
			sum = sum.Add(t.Amount)
		}
	}
	return sum
}

// TotalPrincipal sums contributed capital: initial and investments in,
// withdrawals out. Interest is excluded.
func TotalPrincipal(l domain.Ledger) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range l {
		switch t.Kind {
		case domain.KindInitial, domain.KindInvestment:
			sum = sum.Add(t.Amount)
		case domain.KindWithdrawal:
			sum = sum.Sub(t.Amount)
		}
	}
	return sum
}

// WeightedRateForUpcomingQuarter scans up to four quarters ahead of
// today for a scheduled rate change and, when one is found, returns
// the day-weighted blended rate for that quarter. Display only; it
// never feeds stored interest.
func WeightedRateForUpcomingQuarter(l domain.Ledger, today pkg.Date, seedRate decimal.Decimal) *domain.WeightedRatePreview {
	q := pkg.QuarterOf(today)
	for i := 0; i < 4; i++ {
		q = q.Next()
		change := firstRateChangeIn(l, q.Start(), q.End())
		if change == nil {
			continue
		}

		oldRate, newRate := seedRate, seedRate
		if change.Metadata != nil {
			if change.Metadata.OldRate != nil {
				oldRate = *change.Metadata.OldRate
			}
			if change.Metadata.NewRate != nil {
				newRate = *change.Metadata.NewRate
			}
		}

		totalDays := q.TotalDays()
		daysBefore := q.Start().DaysBetween(change.Date)
		daysAfter := totalDays - daysBefore

		weighted := oldRate.Mul(decimal.NewFromInt(int64(daysBefore))).
			Add(newRate.Mul(decimal.NewFromInt(int64(daysAfter)))).
			Div(decimal.NewFromInt(int64(totalDays)))

		return &domain.WeightedRatePreview{
			Quarter:      q.String(),
			QuarterStart: q.Start(),
			QuarterEnd:   q.End(),
			ChangeDate:   change.Date,
			OldRate:      oldRate,
			NewRate:      newRate,
			DaysBefore:   daysBefore,
			DaysAfter:    daysAfter,
			TotalDays:    totalDays,
			WeightedRate: weighted.Round(2),
		}
	}
	return nil
}

func firstRateChangeIn(l domain.Ledger, start, end pkg.Date) *domain.Transaction {
	sorted := make(domain.Ledger, len(l))
	copy(sorted, l)
	sorted.Sort()
	for _, t := range sorted {
		if t.Kind != domain.KindRateChange {
			continue
		}
		if !t.Date.Before(start) && !t.Date.After(end) {
			return t
		}
	}
	return nil
}

// QuarterlyProratedInterest walks a quarter segment by segment,
// accruing day-counted interest on the balance held between
// transactions and picking up mid-quarter balance and rate changes.
// It answers "what would this quarter earn, prorated"; the stored
// accruals come from the flat-quarterly calculator instead.
func QuarterlyProratedInterest(l domain.Ledger, seedRate decimal.Decimal, qStart, qEnd pkg.Date) decimal.Decimal {
	sorted := make(domain.Ledger, len(l))
	copy(sorted, l)
	sorted.Sort()

	total := decimal.Zero
	balance := decimal.Zero
	rate := seedRate
	periodStart := qStart

	for _, t := range sorted {
		if t.Date.After(qEnd) {
			break
		}
		if t.Date.Before(qStart) {
			balance = t.Apply(balance)
			if t.Kind == domain.KindRateChange && t.Metadata != nil && t.Metadata.NewRate != nil {
				rate = *t.Metadata.NewRate
			}
			continue
		}

		// Accrue for the segment ending at this transaction.
		if balance.IsPositive() && periodStart.Before(t.Date) {
			total = total.Add(ledger.ProratedInterest(balance, rate, periodStart, t.Date))
		}
		if t.Kind == domain.KindInterestEarned || t.Kind == domain.KindInterestPaid {
			// Accruals themselves don't move the prorated base.
		} else {
			balance = t.Apply(balance)
		}
		if t.Kind == domain.KindRateChange && t.Metadata != nil && t.Metadata.NewRate != nil {
			rate = *t.Metadata.NewRate
		}
		periodStart = t.Date
	}

	if balance.IsPositive() && periodStart.Before(qEnd) {
		total = total.Add(ledger.ProratedInterest(balance, rate, periodStart, qEnd))
	}
	return ledger.RoundMoney(total)
}
