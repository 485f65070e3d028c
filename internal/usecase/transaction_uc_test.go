package usecase_test

import (
	"context"
	"testing"

	"ledger-service/internal/domain"
	"ledger-service/internal/pkg"
	publisher "ledger-service/internal/pub"
	mock_repository "ledger-service/internal/repository/mocks"
	"ledger-service/internal/usecase"

	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTx satisfies pgx.Tx for persistence paths; every operation
// succeeds and does nothing.
type stubTx struct{}

func (stubTx) Begin(context.Context) (pgx.Tx, error) { return stubTx{}, nil }
func (stubTx) Commit(context.Context) error          { return nil }
func (stubTx) Rollback(context.Context) error        { return nil }
func (stubTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (stubTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }
func (stubTx) LargeObjects() pgx.LargeObjects                         { return pgx.LargeObjects{} }
func (stubTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (stubTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (stubTx) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (stubTx) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }
func (stubTx) Conn() *pgx.Conn                                         { return nil }

func newTxUsecase(t *testing.T) (*usecase.TransactionUsecase, *mock_repository.MockInvestorRepository, *mock_repository.MockTransactionRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	invRepo := mock_repository.NewMockInvestorRepository(ctrl)
	txRepo := mock_repository.NewMockTransactionRepository(ctrl)
	uc := usecase.NewTransactionUsecase(invRepo, txRepo, nil, nil, publisher.NewLedgerEventPublisher(nil))
	return uc, invRepo, txRepo
}

func testInvestor() *domain.Investor {
	return &domain.Investor{
		ID:           "inv1",
		CompanyID:    "co1",
		Name:         "R. Patel",
		InterestRate: decimal.NewFromInt(12),
		Reinvesting:  true,
		StartDate:    pkg.MustDate("01-Jan-2023"),
		IsActive:     true,
	}
}

func ledgerEntry(id, date string, kind domain.TransactionKind, amount string, seq int64, description string) *domain.Transaction {
	return &domain.Transaction{
		ID:          id,
		InvestorID:  "inv1",
		Date:        pkg.MustDate(date),
		Kind:        kind,
		Amount:      decimal.RequireFromString(amount),
		Description: description,
		Seq:         seq,
	}
}

func baseLedger() domain.Ledger {
	return domain.Ledger{
		ledgerEntry("init", "01-Jan-2023", domain.KindInitial, "100000", 1, "Initial Investment"),
	}
}

func expectLoad(invRepo *mock_repository.MockInvestorRepository, txRepo *mock_repository.MockTransactionRepository, inv *domain.Investor, l domain.Ledger) {
	invRepo.EXPECT().GetByID(gomock.Any(), inv.ID).Return(inv, nil)
	txRepo.EXPECT().ListByInvestor(gomock.Any(), inv.ID).Return(l, nil)
}

// expectPersist wires the stub transaction through the commit path and
// returns a pointer that receives the persisted ledger.
func expectPersist(invRepo *mock_repository.MockInvestorRepository, txRepo *mock_repository.MockTransactionRepository) *domain.Ledger {
	persisted := &domain.Ledger{}
	invRepo.EXPECT().BeginTx(gomock.Any()).Return(stubTx{}, nil)
	txRepo.EXPECT().ReplaceAll(gomock.Any(), gomock.Any(), "inv1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, _ string, l domain.Ledger) error {
			*persisted = l
			return nil
		})
	invRepo.EXPECT().UpdateSnapshot(gomock.Any(), gomock.Any(), "inv1", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	return persisted
}

func TestAddTransactionRejectsSecondInitial(t *testing.T) {
	uc, _, _ := newTxUsecase(t)

	_, err := uc.AddTransaction(context.Background(), "inv1", &usecase.AddTransactionRequest{
		Date: "01-Feb-2023", Type: "initial", Amount: "5000",
	})
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
}

func TestAddTransactionRejectsRateChangeKind(t *testing.T) {
	uc, _, _ := newTxUsecase(t)

	_, err := uc.AddTransaction(context.Background(), "inv1", &usecase.AddTransactionRequest{
		Date: "01-Feb-2023", Type: "rate-change", Amount: "0",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestAddTransactionValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     *usecase.AddTransactionRequest
		wantErr error
	}{
		{
			name:    "unknown type",
			req:     &usecase.AddTransactionRequest{Date: "01-Feb-2023", Type: "deposit", Amount: "100"},
			wantErr: domain.ErrInvalidRequest,
		},
		{
			name:    "bad date",
			req:     &usecase.AddTransactionRequest{Date: "02/01/2023", Type: "investment", Amount: "100"},
			wantErr: domain.ErrInvalidDate,
		},
		{
			name:    "non-numeric amount",
			req:     &usecase.AddTransactionRequest{Date: "01-Feb-2023", Type: "investment", Amount: "abc"},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "negative investment",
			req:     &usecase.AddTransactionRequest{Date: "01-Feb-2023", Type: "investment", Amount: "-100"},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newTxUsecase(t)
			_, err := uc.AddTransaction(context.Background(), "inv1", tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAddTransactionNegativeAdjustmentAllowed(t *testing.T) {
	uc, invRepo, txRepo := newTxUsecase(t)
	expectLoad(invRepo, txRepo, testInvestor(), baseLedger())
	persisted := expectPersist(invRepo, txRepo)

	inv, err := uc.AddTransaction(context.Background(), "inv1", &usecase.AddTransactionRequest{
		Date: "01-Feb-2023", Type: "adjustment", Amount: "-250.50", Description: "Correction",
	})
	require.NoError(t, err)
	assert.Equal(t, "99749.50", inv.CurrentBalance.StringFixed(2))
	require.Len(t, *persisted, 2)
}

func TestAddTransactionWithdrawalOverBalance(t *testing.T) {
	uc, invRepo, txRepo := newTxUsecase(t)
	expectLoad(invRepo, txRepo, testInvestor(), baseLedger())

	_, err := uc.AddTransaction(context.Background(), "inv1", &usecase.AddTransactionRequest{
		Date: "01-Feb-2023", Type: "withdrawal", Amount: "100000.01",
	})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Contains(t, err.Error(), "withdrawal exceeds current balance of $100000.00")
}

func TestAddTransactionWithdrawalOfEntireBalance(t *testing.T) {
	uc, invRepo, txRepo := newTxUsecase(t)
	expectLoad(invRepo, txRepo, testInvestor(), baseLedger())
	expectPersist(invRepo, txRepo)

	inv, err := uc.AddTransaction(context.Background(), "inv1", &usecase.AddTransactionRequest{
		Date: "01-Feb-2023", Type: "withdrawal", Amount: "100000",
	})
	require.NoError(t, err)
	assert.Equal(t, "0.00", inv.CurrentBalance.StringFixed(2))
}

func TestAddTransactionRepricesFutureInterest(t *testing.T) {
	uc, invRepo, txRepo := newTxUsecase(t)

	l := domain.Ledger{
		ledgerEntry("init", "01-Jan-2023", domain.KindInitial, "100000", 1, "Initial Investment"),
		ledgerEntry("q1", "31-Mar-2023", domain.KindInterestEarned, "3000", 2, "Q1 2023 Interest Earned/Reinvested @ 12%"),
		ledgerEntry("q2", "30-Jun-2023", domain.KindInterestEarned, "3090", 3, "Q2 2023 Interest Earned/Reinvested @ 12%"),
	}
	expectLoad(invRepo, txRepo, testInvestor(), l)
	persisted := expectPersist(invRepo, txRepo)

	inv, err := uc.AddTransaction(context.Background(), "inv1", &usecase.AddTransactionRequest{
		Date: "01-Apr-2023", Type: "investment", Amount: "50000", Description: "Second tranche",
	})
	require.NoError(t, err)

	q2 := mustFind(t, *persisted, "q2")
	assert.Equal(t, "4590.00", q2.Amount.StringFixed(2))
	require.NotNil(t, q2.Metadata)
	assert.True(t, q2.Metadata.Recalculated)

	// 100000 + 3000 + 50000 + 4590
	assert.Equal(t, "157590.00", inv.CurrentBalance.StringFixed(2))
}

func TestDeleteTransactionInitialRejected(t *testing.T) {
	uc, invRepo, txRepo := newTxUsecase(t)
	expectLoad(invRepo, txRepo, testInvestor(), baseLedger())

	_, err := uc.DeleteTransaction(context.Background(), "inv1", "init")
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
}

func TestDeleteTransactionNotFound(t *testing.T) {
	uc, invRepo, txRepo := newTxUsecase(t)
	expectLoad(invRepo, txRepo, testInvestor(), baseLedger())

	_, err := uc.DeleteTransaction(context.Background(), "inv1", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteTransactionRepricesFutureInterest(t *testing.T) {
	uc, invRepo, txRepo := newTxUsecase(t)

	l := domain.Ledger{
		ledgerEntry("init", "01-Jan-2023", domain.KindInitial, "100000", 1, "Initial Investment"),
		ledgerEntry("dep", "01-Apr-2023", domain.KindInvestment, "50000", 2, "Second tranche"),
		ledgerEntry("q2", "30-Jun-2023", domain.KindInterestEarned, "4500", 3, "Q2 2023 Interest Earned/Reinvested @ 12%"),
	}
	expectLoad(invRepo, txRepo, testInvestor(), l)
	persisted := expectPersist(invRepo, txRepo)

	inv, err := uc.DeleteTransaction(context.Background(), "inv1", "dep")
	require.NoError(t, err)

	require.Len(t, *persisted, 2)
	q2 := mustFind(t, *persisted, "q2")
	assert.Equal(t, "3000.00", q2.Amount.StringFixed(2))
	assert.Equal(t, "103000.00", inv.CurrentBalance.StringFixed(2))
}

func TestEditTransactionSingleScopeLeavesRestAlone(t *testing.T) {
	uc, invRepo, txRepo := newTxUsecase(t)

	l := domain.Ledger{
		ledgerEntry("init", "01-Jan-2023", domain.KindInitial, "100000", 1, "Initial Investment"),
		ledgerEntry("dep", "01-Apr-2023", domain.KindInvestment, "50000", 2, "Second tranche"),
		ledgerEntry("q2", "30-Jun-2023", domain.KindInterestEarned, "4590", 3, "Q2 2023 Interest Earned/Reinvested @ 12%"),
	}
	expectLoad(invRepo, txRepo, testInvestor(), l)
	persisted := expectPersist(invRepo, txRepo)

	amount := "60000"
	_, err := uc.EditTransaction(context.Background(), "inv1", "dep", &usecase.EditTransactionRequest{
		Amount: &amount, Scope: usecase.ScopeSingle,
	})
	require.NoError(t, err)

	dep := mustFind(t, *persisted, "dep")
	assert.Equal(t, "60000.00", dep.Amount.StringFixed(2))
	require.NotNil(t, dep.Metadata)
	assert.True(t, dep.Metadata.Edited)

	// The later accrual is deliberately untouched under the single scope.
	assert.Equal(t, "4590.00", mustFind(t, *persisted, "q2").Amount.StringFixed(2))
}

func TestEditTransactionThisAndFutureUsesDayCount(t *testing.T) {
	uc, invRepo, txRepo := newTxUsecase(t)

	l := domain.Ledger{
		ledgerEntry("init", "01-Jan-2023", domain.KindInitial, "100000", 1, "Initial Investment"),
		ledgerEntry("dep", "01-Apr-2023", domain.KindInvestment, "50000", 2, "Second tranche"),
		ledgerEntry("q2", "30-Jun-2023", domain.KindInterestEarned, "4590", 3, "Q2 2023 Interest Earned/Reinvested @ 12%"),
	}
	expectLoad(invRepo, txRepo, testInvestor(), l)
	persisted := expectPersist(invRepo, txRepo)

	amount := "53000"
	_, err := uc.EditTransaction(context.Background(), "inv1", "dep", &usecase.EditTransactionRequest{
		Amount: &amount, Scope: usecase.ScopeThisAndFuture,
	})
	require.NoError(t, err)

	// 153000 * 12% * 30/365, the day-counted June accrual.
	assert.Equal(t, "1509.04", mustFind(t, *persisted, "q2").Amount.StringFixed(2))
}

func TestEditInitialTermsRepricesWholeHistory(t *testing.T) {
	uc, invRepo, txRepo := newTxUsecase(t)

	l := domain.Ledger{
		ledgerEntry("init", "01-Jan-2023", domain.KindInitial, "100000", 1, "Initial Investment"),
		ledgerEntry("q1", "31-Mar-2023", domain.KindInterestEarned, "3000", 2, "Q1 2023 Interest Earned/Reinvested @ 12%"),
	}
	expectLoad(invRepo, txRepo, testInvestor(), l)
	persisted := expectPersist(invRepo, txRepo)

	amount := "200000"
	inv, err := uc.EditInitialTerms(context.Background(), "inv1", &amount, nil)
	require.NoError(t, err)

	assert.Equal(t, "6000.00", mustFind(t, *persisted, "q1").Amount.StringFixed(2))
	assert.Equal(t, "206000.00", inv.CurrentBalance.StringFixed(2))
}

func TestChangeRateValidation(t *testing.T) {
	uc, _, _ := newTxUsecase(t)

	_, err := uc.ChangeRate(context.Background(), "inv1", &usecase.ChangeRateRequest{
		NewRate: "-5", EffectiveDate: "01-Jun-2023",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = uc.ChangeRate(context.Background(), "inv1", &usecase.ChangeRateRequest{
		NewRate: "15", EffectiveDate: "June 1st",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestChangeRateAppendsEventAndOptionallyReprices(t *testing.T) {
	uc, invRepo, txRepo := newTxUsecase(t)

	l := domain.Ledger{
		ledgerEntry("init", "01-Jan-2023", domain.KindInitial, "100000", 1, "Initial Investment"),
		ledgerEntry("q2", "30-Jun-2023", domain.KindInterestEarned, "3000", 2, "Q2 2023 Interest Earned/Reinvested @ 12%"),
	}
	expectLoad(invRepo, txRepo, testInvestor(), l)
	persisted := expectPersist(invRepo, txRepo)

	inv, err := uc.ChangeRate(context.Background(), "inv1", &usecase.ChangeRateRequest{
		NewRate: "15", EffectiveDate: "01-Apr-2023", Reason: "board decision", RecalculateFuture: true,
	})
	require.NoError(t, err)

	var change *domain.Transaction
	for _, tx := range *persisted {
		if tx.Kind == domain.KindRateChange {
			change = tx
		}
	}
	require.NotNil(t, change)
	assert.Equal(t, "RATE CHANGE: 12% → 15% effective 01-Apr-2023 - board decision", change.Description)
	require.NotNil(t, change.Metadata)
	assert.Equal(t, "12", change.Metadata.OldRate.String())
	assert.Equal(t, "15", change.Metadata.NewRate.String())

	// 100000 * 15% / 4, and the description tag follows the new rate.
	q2 := mustFind(t, *persisted, "q2")
	assert.Equal(t, "3750.00", q2.Amount.StringFixed(2))
	assert.Equal(t, "Q2 2023 Interest Earned/Reinvested @ 15%", q2.Description)

	// The projected current rate follows the timeline.
	assert.Equal(t, "15", inv.InterestRate.String())
}

func TestChangeRateWithoutRecalcLeavesInterestAlone(t *testing.T) {
	uc, invRepo, txRepo := newTxUsecase(t)

	l := domain.Ledger{
		ledgerEntry("init", "01-Jan-2023", domain.KindInitial, "100000", 1, "Initial Investment"),
		ledgerEntry("q2", "30-Jun-2023", domain.KindInterestEarned, "3000", 2, "Q2 2023 Interest Earned/Reinvested @ 12%"),
	}
	expectLoad(invRepo, txRepo, testInvestor(), l)
	persisted := expectPersist(invRepo, txRepo)

	_, err := uc.ChangeRate(context.Background(), "inv1", &usecase.ChangeRateRequest{
		NewRate: "15", EffectiveDate: "01-Apr-2023",
	})
	require.NoError(t, err)

	assert.Equal(t, "3000.00", mustFind(t, *persisted, "q2").Amount.StringFixed(2))
}

func TestCalculateQuarterlyInterestReinvested(t *testing.T) {
	uc, invRepo, txRepo := newTxUsecase(t)
	expectLoad(invRepo, txRepo, testInvestor(), baseLedger())
	persisted := expectPersist(invRepo, txRepo)

	inv, err := uc.CalculateQuarterlyInterest(context.Background(), "inv1", &usecase.QuarterlyInterestRequest{
		Quarter: "Q2", Year: 2023,
	})
	require.NoError(t, err)

	require.Len(t, *persisted, 2)
	earned := (*persisted)[1]
	assert.Equal(t, domain.KindInterestEarned, earned.Kind)
	assert.True(t, earned.Date.Equal(pkg.MustDate("30-Jun-2023")))
	assert.Equal(t, "3000.00", earned.Amount.StringFixed(2))
	assert.Equal(t, "Q2 2023 Interest Earned/Reinvested @ 12%", earned.Description)

	assert.Equal(t, "103000.00", inv.CurrentBalance.StringFixed(2))
}

func TestCalculateQuarterlyInterestDisbursed(t *testing.T) {
	uc, invRepo, txRepo := newTxUsecase(t)

	inv := testInvestor()
	inv.Reinvesting = false
	expectLoad(invRepo, txRepo, inv, baseLedger())
	persisted := expectPersist(invRepo, txRepo)

	out, err := uc.CalculateQuarterlyInterest(context.Background(), "inv1", &usecase.QuarterlyInterestRequest{
		Quarter: "Q2", Year: 2023,
	})
	require.NoError(t, err)

	require.Len(t, *persisted, 3)
	earned, paid := (*persisted)[1], (*persisted)[2]
	assert.Equal(t, domain.KindInterestEarned, earned.Kind)
	assert.Equal(t, "Q2 2023 Interest Earned @ 12%", earned.Description)
	assert.Equal(t, domain.KindInterestPaid, paid.Kind)
	assert.Equal(t, "Q2 2023 Interest Disbursement", paid.Description)
	assert.True(t, earned.Amount.Equal(paid.Amount))

	// The disbursed pair nets to zero.
	assert.Equal(t, "100000.00", out.CurrentBalance.StringFixed(2))
}

func TestCalculateQuarterlyInterestRejectsEmptyQuarter(t *testing.T) {
	uc, invRepo, txRepo := newTxUsecase(t)
	expectLoad(invRepo, txRepo, testInvestor(), baseLedger())

	// Balance at the start of Q1 2023 is zero: the initial lands on the
	// quarter's first day and the quarter-start cutoff is exclusive.
	_, err := uc.CalculateQuarterlyInterest(context.Background(), "inv1", &usecase.QuarterlyInterestRequest{
		Quarter: "Q1", Year: 2023,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func mustFind(t *testing.T, l domain.Ledger, id string) *domain.Transaction {
	t.Helper()
	for _, tx := range l {
		if tx.ID == id {
			return tx
		}
	}
	t.Fatalf("transaction %s not persisted", id)
	return nil
}
