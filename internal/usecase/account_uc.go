package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ledger-service/internal/domain"
	"ledger-service/internal/ledger"
	"ledger-service/internal/pkg"
	"ledger-service/internal/repository"
	"ledger-service/pkg/utils"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// AccountUsecase owns company and investor account lifecycle:
// creation (seeding the single initial transaction), profile edits,
// listing and archival. Ledger mutations live in TransactionUsecase.
type AccountUsecase struct {
	companyRepo  repository.CompanyRepository
	investorRepo repository.InvestorRepository
	txRepo       repository.TransactionRepository
	redisClient  *redis.Client
}

// NewAccountUsecase initializes a new AccountUsecase.
func NewAccountUsecase(
	companyRepo repository.CompanyRepository,
	investorRepo repository.InvestorRepository,
	txRepo repository.TransactionRepository,
	redisClient *redis.Client,
) *AccountUsecase {
	return &AccountUsecase{
		companyRepo:  companyRepo,
		investorRepo: investorRepo,
		txRepo:       txRepo,
		redisClient:  redisClient,
	}
}

// ===============================
// COMPANIES
// ===============================

// CreateCompanyRequest carries the fields for a new company.
type CreateCompanyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DefaultRate string `json:"default_rate"`
}

func (uc *AccountUsecase) CreateCompany(ctx context.Context, req *CreateCompanyRequest) (*domain.Company, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: company name is required", domain.ErrInvalidRequest)
	}
	rate := decimal.Zero
	if req.DefaultRate != "" {
		var err error
		if rate, err = decimal.NewFromString(req.DefaultRate); err != nil || rate.IsNegative() {
			return nil, fmt.Errorf("%w: default rate %q", domain.ErrInvalidAmount, req.DefaultRate)
		}
	}

	c := &domain.Company{
		ID:          utils.NewID(),
		Name:        req.Name,
		Description: req.Description,
		DefaultRate: rate,
		IsActive:    true,
	}
	if err := uc.companyRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *AccountUsecase) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	return uc.companyRepo.GetByID(ctx, id)
}

// ListCompanies is cache-aside over redis: company rows change rarely.
func (uc *AccountUsecase) ListCompanies(ctx context.Context) ([]*domain.Company, error) {
	cacheKey := "companies:all"

	if uc.redisClient != nil {
		if val, err := uc.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var companies []*domain.Company
			if jsonErr := json.Unmarshal([]byte(val), &companies); jsonErr == nil {
				return companies, nil
			}
		}
	}

	companies, err := uc.companyRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if uc.redisClient != nil {
		if data, err := json.Marshal(companies); err == nil {
			_ = uc.redisClient.Set(ctx, cacheKey, data, 5*time.Minute).Err()
		}
	}
	return companies, nil
}

// ===============================
// INVESTOR ACCOUNTS
// ===============================

// CreateAccountRequest carries the fields for a new investor account.
// InterestRate falls back to the company default when omitted.
type CreateAccountRequest struct {
	CompanyID         string `json:"company_id"`
	Name              string `json:"name"`
	Address           string `json:"address"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	InitialInvestment string `json:"initial_investment"`
	InterestRate      string `json:"interest_rate"`
	StartDate         string `json:"start_date"`
	Reinvesting       *bool  `json:"reinvesting"`
}

// CreateAccount creates an investor account seeded with exactly one
// initial transaction dated at the start date.
func (uc *AccountUsecase) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*domain.Investor, error) {
	if req.CompanyID == "" || req.Name == "" {
		return nil, fmt.Errorf("%w: company_id and name are required", domain.ErrInvalidRequest)
	}

	company, err := uc.companyRepo.GetByID(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(req.InitialInvestment)
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("%w: initial investment %q must be a positive amount", domain.ErrInvalidAmount, req.InitialInvestment)
	}

	startDate, err := pkg.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start date: %v", domain.ErrInvalidDate, err)
	}

	rate := company.DefaultRate
	if req.InterestRate != "" {
		if rate, err = decimal.NewFromString(req.InterestRate); err != nil || rate.IsNegative() {
			return nil, fmt.Errorf("%w: interest rate %q", domain.ErrInvalidAmount, req.InterestRate)
		}
	}

	reinvesting := true
	if req.Reinvesting != nil {
		reinvesting = *req.Reinvesting
	}

	inv := &domain.Investor{
		ID:             utils.NewID(),
		CompanyID:      company.ID,
		Name:           req.Name,
		Address:        req.Address,
		Email:          req.Email,
		Phone:          req.Phone,
		InterestRate:   rate,
		Reinvesting:    reinvesting,
		StartDate:      startDate,
		IsActive:       true,
		CurrentBalance: amount,
	}
	initial := &domain.Transaction{
		ID:          utils.NewID(),
		InvestorID:  inv.ID,
		Date:        startDate,
		Kind:        domain.KindInitial,
		Amount:      ledger.RoundMoney(amount),
		Description: "Initial Investment",
		Seq:         1,
	}
	inv.Transactions = domain.Ledger{initial}

	tx, err := uc.investorRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.investorRepo.Create(ctx, inv, tx); err != nil {
		return nil, err
	}
	if err := uc.txRepo.Insert(ctx, tx, initial); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit create account: %v", domain.ErrPersistenceFailure, err)
	}

	log.WithFields(log.Fields{
		"investor_id": inv.ID,
		"company_id":  inv.CompanyID,
		"amount":      amount.String(),
		"rate":        rate.String(),
	}).Info("investor account created")

	return inv, nil
}

// GetAccount loads an investor with its full ledger. The returned
// snapshot fields are re-derived from the ledger, never trusted from
// the row.
func (uc *AccountUsecase) GetAccount(ctx context.Context, id string) (*domain.Investor, error) {
	inv, err := uc.investorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	l, err := uc.txRepo.ListByInvestor(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Sort()
	inv.Transactions = l
	inv.CurrentBalance = ledger.ComputeBalance(l)
	inv.InterestRate = ledger.CurrentRate(l, inv.InterestRate)
	return inv, nil
}

func (uc *AccountUsecase) ListAccounts(ctx context.Context, f *domain.InvestorFilter) ([]*domain.Investor, error) {
	return uc.investorRepo.List(ctx, f)
}

// UpdateDetails mutates the contact/profile surface only. Edits to
// the initial amount, start date or rate run through
// TransactionUsecase so the cascade fires.
func (uc *AccountUsecase) UpdateDetails(ctx context.Context, id string, d *domain.InvestorDetails) (*domain.Investor, error) {
	if err := uc.investorRepo.UpdateDetails(ctx, id, d); err != nil {
		return nil, err
	}
	return uc.GetAccount(ctx, id)
}

// Archive flags the account inactive. Accounts are never hard-deleted.
func (uc *AccountUsecase) Archive(ctx context.Context, id string) error {
	return uc.investorRepo.Archive(ctx, id)
}
