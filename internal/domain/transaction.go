package domain

import (
	"fmt"
	"sort"
	"time"

	"ledger-service/internal/pkg"

	"github.com/shopspring/decimal"
)

// TransactionKind enumerates the ledger entry types. Wire names match
// the values persisted by the system since day one.
type TransactionKind string

const (
	KindInitial        TransactionKind = "initial"
	KindInvestment     TransactionKind = "investment"
	KindBonus          TransactionKind = "bonus"
	KindAdjustment     TransactionKind = "adjustment"
	KindInterestEarned TransactionKind = "interest-earned"
	KindWithdrawal     TransactionKind = "withdrawal"
	KindInterestPaid   TransactionKind = "interest-paid"
	KindFee            TransactionKind = "fee"
	KindRateChange     TransactionKind = "rate-change"
)

// ParseTransactionKind validates a wire value.
func ParseTransactionKind(s string) (TransactionKind, error) {
	k := TransactionKind(s)
	switch k {
	case KindInitial, KindInvestment, KindBonus, KindAdjustment,
		KindInterestEarned, KindWithdrawal, KindInterestPaid,
		KindFee, KindRateChange:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown transaction type %q", ErrInvalidRequest, s)
}

// Credits returns true for kinds that add to the balance.
func (k TransactionKind) Credits() bool {
	switch k {
	case KindInitial, KindInvestment, KindBonus, KindAdjustment, KindInterestEarned:
		return true
	}
	return false
}

// Debits returns true for kinds that subtract from the balance.
func (k TransactionKind) Debits() bool {
	switch k {
	case KindWithdrawal, KindInterestPaid, KindFee:
		return true
	}
	return false
}

// PrincipalAffecting reports whether inserting/removing a transaction
// of this kind changes the base used for later interest accruals.
// RateChange is balance-neutral and deliberately excluded.
func (k TransactionKind) PrincipalAffecting() bool {
	switch k {
	case KindInitial, KindInvestment, KindWithdrawal, KindAdjustment, KindBonus, KindFee:
		return true
	}
	return false
}

// TransactionMetadata carries kind-specific payload. For rate changes
// it holds the old/new rate; edit bookkeeping mirrors what the system
// has always stored on the row.
type TransactionMetadata struct {
	OldRate        *decimal.Decimal `json:"oldRate,omitempty"`
	NewRate        *decimal.Decimal `json:"newRate,omitempty"`
	Reason         string           `json:"reason,omitempty"`
	Edited         bool             `json:"edited,omitempty"`
	EditedAt       *time.Time       `json:"editedAt,omitempty"`
	Recalculated   bool             `json:"recalculated,omitempty"`
	RecalculatedAt *time.Time       `json:"recalculatedAt,omitempty"`
	OriginalAmount *decimal.Decimal `json:"originalAmount,omitempty"`
}

// IsEmpty reports whether there is anything worth persisting.
func (m *TransactionMetadata) IsEmpty() bool {
	if m == nil {
		return true
	}
	return m.OldRate == nil && m.NewRate == nil && m.Reason == "" &&
		!m.Edited && !m.Recalculated && m.OriginalAmount == nil
}

// Transaction is a single dated ledger entry for one investor.
// Amount is stored non-negative; the sign is implied by Kind
// (Adjustment is the exception and may carry a negative amount).
type Transaction struct {
	ID          string               `json:"id"`
	InvestorID  string               `json:"investor_id"`
	Date        pkg.Date             `json:"date"`
	Kind        TransactionKind      `json:"type"`
	Amount      decimal.Decimal      `json:"amount"`
	Description string               `json:"description"`
	Metadata    *TransactionMetadata `json:"metadata,omitempty"`
	// Seq is the per-investor insertion sequence. It is the explicit
	// tie-break for same-day transactions and is persisted so original
	// insertion order survives reload.
	Seq       int64     `json:"seq"`
	CreatedAt time.Time `json:"created_at"`
}

// Apply folds the transaction into a running balance.
func (t *Transaction) Apply(balance decimal.Decimal) decimal.Decimal {
	switch {
	case t.Kind == KindRateChange:
		return balance
	case t.Kind.Credits():
		return balance.Add(t.Amount)
	case t.Kind.Debits():
		return balance.Sub(t.Amount)
	}
	return balance
}

// Clone returns a deep copy, so cascades can build a proposed ledger
// without touching the source rows.
func (t *Transaction) Clone() *Transaction {
	cp := *t
	if t.Metadata != nil {
		m := *t.Metadata
		cp.Metadata = &m
	}
	return &cp
}

// Ledger is an investor's ordered transaction history.
type Ledger []*Transaction

// Sort orders by (date, insertion sequence). Same-day entries keep
// their relative insertion order, which makes replays deterministic.
func (l Ledger) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		if !l[i].Date.Equal(l[j].Date) {
			return l[i].Date.Before(l[j].Date)
		}
		return l[i].Seq < l[j].Seq
	})
}

// Clone deep-copies the ledger.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for i, t := range l {
		out[i] = t.Clone()
	}
	return out
}

// NextSeq returns the next insertion sequence number.
func (l Ledger) NextSeq() int64 {
	var max int64
	for _, t := range l {
		if t.Seq > max {
			max = t.Seq
		}
	}
	return max + 1
}

// InitialCount counts initial transactions; a well-formed ledger has
// exactly one.
func (l Ledger) InitialCount() int {
	n := 0
	for _, t := range l {
		if t.Kind == KindInitial {
			n++
		}
	}
	return n
}

// Validate enforces the structural invariants: exactly one initial
// record and it must be first by date.
func (l Ledger) Validate() error {
	if len(l) == 0 {
		return fmt.Errorf("%w: ledger has no transactions", ErrInvariantViolation)
	}
	if n := l.InitialCount(); n != 1 {
		return fmt.Errorf("%w: ledger must contain exactly one initial transaction, found %d", ErrInvariantViolation, n)
	}
	sorted := make(Ledger, len(l))
	copy(sorted, l)
	sorted.Sort()
	if sorted[0].Kind != KindInitial {
		return fmt.Errorf("%w: first transaction by date must be initial, got %s on %s",
			ErrInvariantViolation, sorted[0].Kind, sorted[0].Date)
	}
	return nil
}
