package ledger

import (
	"ledger-service/internal/domain"
	"ledger-service/internal/pkg"

	"github.com/shopspring/decimal"
)

// RateSource answers "what annual rate is in effect on this date".
// Cascades take one so callers choose between a pinned rate and the
// full rate-change timeline.
type RateSource func(pkg.Date) decimal.Decimal

// FixedRate pins a single rate for every date.
func FixedRate(rate decimal.Decimal) RateSource {
	return func(pkg.Date) decimal.Decimal { return rate }
}

// TimelineRate derives the rate from rate-change events: the newRate
// of the latest rate-change on or before the asked date, falling back
// to the seed rate for dates that predate all rate changes. The event
// log is the source of truth; the investor's stored rate field is just
// a projection of this timeline at today.
func TimelineRate(l domain.Ledger, seedRate decimal.Decimal) RateSource {
	sorted := make(domain.Ledger, len(l))
	copy(sorted, l)
	sorted.Sort()

	return func(d pkg.Date) decimal.Decimal {
		rate := seedRate
		for _, t := range sorted {
			if t.Date.After(d) {
				break
			}
			if t.Kind == domain.KindRateChange && t.Metadata != nil && t.Metadata.NewRate != nil {
				rate = *t.Metadata.NewRate
			}
		}
		return rate
	}
}

// RateAt is the point lookup over the timeline.
func RateAt(l domain.Ledger, seedRate decimal.Decimal, d pkg.Date) decimal.Decimal {
	return TimelineRate(l, seedRate)(d)
}

// CurrentRate projects the rate in effect today.
func CurrentRate(l domain.Ledger, seedRate decimal.Decimal) decimal.Decimal {
	return RateAt(l, seedRate, pkg.Today())
}
