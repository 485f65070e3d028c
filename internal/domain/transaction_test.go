package domain

import (
	"testing"

	"ledger-service/internal/pkg"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(id, date string, kind TransactionKind, amount string, seq int64) *Transaction {
	return &Transaction{
		ID:     id,
		Date:   pkg.MustDate(date),
		Kind:   kind,
		Amount: decimal.RequireFromString(amount),
		Seq:    seq,
	}
}

func TestParseTransactionKind(t *testing.T) {
	for _, s := range []string{"initial", "investment", "bonus", "adjustment",
		"interest-earned", "withdrawal", "interest-paid", "fee", "rate-change"} {
		k, err := ParseTransactionKind(s)
		require.NoError(t, err)
		assert.Equal(t, TransactionKind(s), k)
	}

	_, err := ParseTransactionKind("deposit")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestTransactionApply(t *testing.T) {
	tests := []struct {
		kind TransactionKind
		want string
	}{
		{KindInitial, "1100"},
		{KindInvestment, "1100"},
		{KindBonus, "1100"},
		{KindAdjustment, "1100"},
		{KindInterestEarned, "1100"},
		{KindWithdrawal, "900"},
		{KindInterestPaid, "900"},
		{KindFee, "900"},
		{KindRateChange, "1000"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			entry := tx("t1", "01-Jan-2023", tt.kind, "100", 1)
			got := entry.Apply(decimal.NewFromInt(1000))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestLedgerSortSameDayKeepsInsertionOrder(t *testing.T) {
	l := Ledger{
		tx("c", "15-Mar-2023", KindWithdrawal, "10", 3),
		tx("a", "01-Jan-2023", KindInitial, "1000", 1),
		tx("b", "15-Mar-2023", KindInvestment, "500", 2),
	}
	l.Sort()

	ids := []string{l[0].ID, l[1].ID, l[2].ID}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestLedgerNextSeq(t *testing.T) {
	assert.Equal(t, int64(1), Ledger{}.NextSeq())

	l := Ledger{
		tx("a", "01-Jan-2023", KindInitial, "1000", 1),
		tx("b", "02-Jan-2023", KindInvestment, "500", 7),
	}
	assert.Equal(t, int64(8), l.NextSeq())
}

func TestLedgerValidate(t *testing.T) {
	tests := []struct {
		name    string
		ledger  Ledger
		wantErr bool
	}{
		{
			name:    "empty",
			ledger:  Ledger{},
			wantErr: true,
		},
		{
			name: "valid",
			ledger: Ledger{
				tx("a", "01-Jan-2023", KindInitial, "1000", 1),
				tx("b", "01-Feb-2023", KindInvestment, "500", 2),
			},
		},
		{
			name: "no initial",
			ledger: Ledger{
				tx("a", "01-Jan-2023", KindInvestment, "1000", 1),
			},
			wantErr: true,
		},
		{
			name: "two initials",
			ledger: Ledger{
				tx("a", "01-Jan-2023", KindInitial, "1000", 1),
				tx("b", "02-Jan-2023", KindInitial, "500", 2),
			},
			wantErr: true,
		},
		{
			name: "initial not first by date",
			ledger: Ledger{
				tx("a", "05-Jan-2023", KindInitial, "1000", 1),
				tx("b", "02-Jan-2023", KindInvestment, "500", 2),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ledger.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvariantViolation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := tx("a", "01-Jan-2023", KindInterestEarned, "300", 2)
	orig.Metadata = &TransactionMetadata{Recalculated: true}

	cp := orig.Clone()
	cp.Amount = decimal.NewFromInt(999)
	cp.Metadata.Recalculated = false

	assert.True(t, orig.Amount.Equal(decimal.NewFromInt(300)))
	assert.True(t, orig.Metadata.Recalculated)
}

func TestMetadataIsEmpty(t *testing.T) {
	var m *TransactionMetadata
	assert.True(t, m.IsEmpty())
	assert.True(t, (&TransactionMetadata{}).IsEmpty())

	r := decimal.NewFromInt(12)
	assert.False(t, (&TransactionMetadata{NewRate: &r}).IsEmpty())
	assert.False(t, (&TransactionMetadata{Edited: true}).IsEmpty())
}
