package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ledger-service/internal/domain"
	"ledger-service/internal/ledger"
	"ledger-service/internal/pkg"
	"ledger-service/internal/projection"
	"ledger-service/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// statementCacheTTL is short: statements change on every mutation and
// mutations invalidate the key anyway; the TTL is a backstop.
const statementCacheTTL = 30 * time.Second

// StatementUsecase assembles read-only statement views by replaying
// an investor's ledger. All the arithmetic lives in the projection
// and ledger packages; this layer only loads, caches and shapes.
type StatementUsecase struct {
	investorRepo repository.InvestorRepository
	txRepo       repository.TransactionRepository
	redisClient  *redis.Client
}

// NewStatementUsecase initializes the usecase.
func NewStatementUsecase(
	investorRepo repository.InvestorRepository,
	txRepo repository.TransactionRepository,
	redisClient *redis.Client,
) *StatementUsecase {
	return &StatementUsecase{
		investorRepo: investorRepo,
		txRepo:       txRepo,
		redisClient:  redisClient,
	}
}

// GetStatement builds the statement for [start, end]. A zero start
// defaults to the account's start date; a zero end defaults to today.
func (uc *StatementUsecase) GetStatement(ctx context.Context, investorID string, start, end pkg.Date) (*domain.AccountStatement, error) {
	cacheKey := fmt.Sprintf("statement:investor:%s", investorID)
	useCache := start.IsZero() && end.IsZero()

	if useCache && uc.redisClient != nil {
		if val, err := uc.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var stmt domain.AccountStatement
			if jsonErr := json.Unmarshal([]byte(val), &stmt); jsonErr == nil {
				return &stmt, nil
			}
		}
	}

	inv, err := uc.investorRepo.GetByID(ctx, investorID)
	if err != nil {
		return nil, err
	}
	l, err := uc.txRepo.ListByInvestor(ctx, investorID)
	if err != nil {
		return nil, err
	}
	l.Sort()

	if start.IsZero() {
		start = inv.StartDate
	}
	if end.IsZero() {
		end = pkg.Today()
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: statement period ends before it starts", domain.ErrInvalidDate)
	}

	stmt := &domain.AccountStatement{
		InvestorID:     inv.ID,
		InvestorName:   inv.Name,
		CompanyID:      inv.CompanyID,
		Rows:           projection.RunningBalanceRows(l),
		Summary:        projection.Summary(l, start, end),
		TotalInterest:  projection.TotalInterest(l),
		TotalPrincipal: projection.TotalPrincipal(l),
		CurrentBalance: ledger.ComputeBalance(l),
	}

	if useCache && uc.redisClient != nil {
		if data, err := json.Marshal(stmt); err == nil {
			_ = uc.redisClient.Set(ctx, cacheKey, data, statementCacheTTL).Err()
		}
	}
	return stmt, nil
}

// GetCurrentBalance answers the balance by full replay, cache-aside.
func (uc *StatementUsecase) GetCurrentBalance(ctx context.Context, investorID string) (decimal.Decimal, error) {
	cacheKey := fmt.Sprintf("balance:investor:%s", investorID)

	if uc.redisClient != nil {
		if val, err := uc.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			if balance, err := decimal.NewFromString(val); err == nil {
				return balance, nil
			}
		}
	}

	l, err := uc.txRepo.ListByInvestor(ctx, investorID)
	if err != nil {
		return decimal.Zero, err
	}
	balance := ledger.ComputeBalance(l)

	if uc.redisClient != nil {
		_ = uc.redisClient.Set(ctx, cacheKey, balance.String(), statementCacheTTL).Err()
	}
	return balance, nil
}

// GetWeightedRatePreview reports the day-weighted blended rate for
// the next upcoming quarter containing a scheduled rate change, or
// nil when none is scheduled.
func (uc *StatementUsecase) GetWeightedRatePreview(ctx context.Context, investorID string) (*domain.WeightedRatePreview, error) {
	inv, err := uc.investorRepo.GetByID(ctx, investorID)
	if err != nil {
		return nil, err
	}
	l, err := uc.txRepo.ListByInvestor(ctx, investorID)
	if err != nil {
		return nil, err
	}
	return projection.WeightedRateForUpcomingQuarter(l, pkg.Today(), inv.InterestRate), nil
}

// GetYearlyInterest sums interest earned in a year.
func (uc *StatementUsecase) GetYearlyInterest(ctx context.Context, investorID string, year int) (decimal.Decimal, error) {
	l, err := uc.txRepo.ListByInvestor(ctx, investorID)
	if err != nil {
		return decimal.Zero, err
	}
	return projection.YearlyInterest(l, year), nil
}

// GetQuarterlyProrated prices a quarter with the day-counted segment
// walker: a display aid for partial quarters and mid-quarter changes.
func (uc *StatementUsecase) GetQuarterlyProrated(ctx context.Context, investorID string, quarter string, year int) (decimal.Decimal, error) {
	q, err := pkg.ParseQuarter(quarter, year)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	inv, err := uc.investorRepo.GetByID(ctx, investorID)
	if err != nil {
		return decimal.Zero, err
	}
	l, err := uc.txRepo.ListByInvestor(ctx, investorID)
	if err != nil {
		return decimal.Zero, err
	}
	return projection.QuarterlyProratedInterest(l, inv.InterestRate, q.Start(), q.End()), nil
}
