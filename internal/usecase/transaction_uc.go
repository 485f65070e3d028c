package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"ledger-service/internal/domain"
	"ledger-service/internal/ledger"
	"ledger-service/internal/pkg"
	publisher "ledger-service/internal/pub"
	"ledger-service/internal/repository"
	"ledger-service/pkg/utils"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// EditScope selects how far a transaction edit reaches.
type EditScope string

const (
	// ScopeSingle replaces the one transaction, no cascade.
	ScopeSingle EditScope = "single"
	// ScopeThisAndFuture replaces the transaction and reprices every
	// later interest accrual with the day-counted formula. This path
	// has always used day counting while the calculator and the
	// insert/delete/rate cascades use flat quarterly; the divergence
	// is a preserved contract, not an accident.
	ScopeThisAndFuture EditScope = "future"
)

// TransactionUsecase is the account mutation service. Every operation
// validates, builds a proposed ledger, runs the cascade where the
// triggering kind requires it, and persists the result atomically.
// Operations on the same investor are serialized by a per-account
// lock; accounts are independent of each other.
type TransactionUsecase struct {
	investorRepo repository.InvestorRepository
	txRepo       repository.TransactionRepository

	redisClient    *redis.Client
	kafkaWriter    *kafka.Writer
	eventPublisher *publisher.LedgerEventPublisher

	locks keyedLocks
}

// NewTransactionUsecase creates a new transaction usecase.
func NewTransactionUsecase(
	investorRepo repository.InvestorRepository,
	txRepo repository.TransactionRepository,
	redisClient *redis.Client,
	kafkaWriter *kafka.Writer,
	eventPublisher *publisher.LedgerEventPublisher,
) *TransactionUsecase {
	return &TransactionUsecase{
		investorRepo:   investorRepo,
		txRepo:         txRepo,
		redisClient:    redisClient,
		kafkaWriter:    kafkaWriter,
		eventPublisher: eventPublisher,
	}
}

// keyedLocks serializes mutations per investor id.
type keyedLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func (k *keyedLocks) lock(key string) func() {
	k.mu.Lock()
	if k.m == nil {
		k.m = make(map[string]*sync.Mutex)
	}
	l, ok := k.m[key]
	if !ok {
		l = &sync.Mutex{}
		k.m[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// ===============================
// REQUESTS
// ===============================

// AddTransactionRequest appends one ledger entry.
type AddTransactionRequest struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// EditTransactionRequest replaces fields of an existing entry. Nil
// fields are left untouched.
type EditTransactionRequest struct {
	Date        *string   `json:"date"`
	Type        *string   `json:"type"`
	Amount      *string   `json:"amount"`
	Description *string   `json:"description"`
	OldRate     *string   `json:"old_rate"`
	NewRate     *string   `json:"new_rate"`
	Scope       EditScope `json:"scope"`
}

// ChangeRateRequest appends a rate-change event.
type ChangeRateRequest struct {
	NewRate           string `json:"new_rate"`
	EffectiveDate     string `json:"effective_date"`
	Reason            string `json:"reason"`
	RecalculateFuture bool   `json:"recalculate_future"`
}

// QuarterlyInterestRequest drives the one-click quarterly calculator.
type QuarterlyInterestRequest struct {
	Quarter  string `json:"quarter"` // Q1..Q4
	Year     int    `json:"year"`
	Reinvest *bool  `json:"reinvest"` // defaults to the account's reinvesting flag
}

// ===============================
// MUTATIONS
// ===============================

// AddTransaction validates and appends a transaction; if the kind is
// principal-affecting, every later interest accrual is repriced from
// the anchor date with the flat quarterly formula and the rate
// timeline.
func (uc *TransactionUsecase) AddTransaction(ctx context.Context, investorID string, req *AddTransactionRequest) (*domain.Investor, error) {
	unlock := uc.locks.lock(investorID)
	defer unlock()

	kind, err := domain.ParseTransactionKind(req.Type)
	if err != nil {
		return nil, err
	}
	switch kind {
	case domain.KindInitial:
		return nil, fmt.Errorf("%w: account already has its initial transaction", domain.ErrInvariantViolation)
	case domain.KindRateChange:
		return nil, fmt.Errorf("%w: rate changes go through the rate-change operation", domain.ErrInvalidRequest)
	}

	date, err := pkg.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
	}
	amount, err := parseAmount(req.Amount, kind)
	if err != nil {
		return nil, err
	}

	inv, l, err := uc.load(ctx, investorID)
	if err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		ID:          utils.NewID(),
		InvestorID:  investorID,
		Date:        date,
		Kind:        kind,
		Amount:      ledger.RoundMoney(amount),
		Description: req.Description,
		Seq:         l.NextSeq(),
	}

	proposed := append(l.Clone(), tx)
	proposed.Sort()

	if kind == domain.KindWithdrawal {
		available := balanceBefore(proposed, tx.ID)
		if amount.GreaterThan(available) {
			return nil, fmt.Errorf("%w: withdrawal exceeds current balance of $%s",
				domain.ErrInvalidAmount, available.StringFixed(2))
		}
	}

	if kind.PrincipalAffecting() {
		proposed = ledger.RecomputeFutureInterest(proposed, date,
			ledger.TimelineRate(proposed, inv.InterestRate), ledger.FlatQuarterly)
	}

	return uc.persist(ctx, inv, l, proposed, "transaction.added", tx)
}

// DeleteTransaction removes a transaction. Removing the sole initial
// record is an invariant violation and is rejected before any state
// changes. Principal-affecting deletions reprice future interest on
// the post-deletion ledger, anchored at the removed date.
func (uc *TransactionUsecase) DeleteTransaction(ctx context.Context, investorID, transactionID string) (*domain.Investor, error) {
	unlock := uc.locks.lock(investorID)
	defer unlock()

	inv, l, err := uc.load(ctx, investorID)
	if err != nil {
		return nil, err
	}

	removed := findTransaction(l, transactionID)
	if removed == nil {
		return nil, fmt.Errorf("%w: transaction %s", domain.ErrNotFound, transactionID)
	}
	if removed.Kind == domain.KindInitial {
		return nil, fmt.Errorf("%w: cannot delete the account's initial transaction", domain.ErrInvariantViolation)
	}

	proposed := make(domain.Ledger, 0, len(l)-1)
	for _, t := range l.Clone() {
		if t.ID != transactionID {
			proposed = append(proposed, t)
		}
	}
	proposed.Sort()

	if removed.Kind.PrincipalAffecting() {
		proposed = ledger.RecomputeFutureInterest(proposed, removed.Date,
			ledger.TimelineRate(proposed, inv.InterestRate), ledger.FlatQuarterly)
	}

	return uc.persist(ctx, inv, l, proposed, "transaction.deleted", removed)
}

// EditTransaction replaces a transaction in place. ScopeSingle leaves
// the rest of the ledger alone; ScopeThisAndFuture reprices every
// interest accrual ordered after the edited row using the day-counted
// formula over each accrual's calendar month.
func (uc *TransactionUsecase) EditTransaction(ctx context.Context, investorID, transactionID string, req *EditTransactionRequest) (*domain.Investor, error) {
	unlock := uc.locks.lock(investorID)
	defer unlock()

	inv, l, err := uc.load(ctx, investorID)
	if err != nil {
		return nil, err
	}

	existing := findTransaction(l, transactionID)
	if existing == nil {
		return nil, fmt.Errorf("%w: transaction %s", domain.ErrNotFound, transactionID)
	}

	updated := existing.Clone()
	if req.Date != nil {
		if updated.Date, err = pkg.ParseDate(*req.Date); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
		}
	}
	if req.Type != nil {
		if updated.Kind, err = domain.ParseTransactionKind(*req.Type); err != nil {
			return nil, err
		}
	}
	if req.Amount != nil {
		amount, err := parseAmount(*req.Amount, updated.Kind)
		if err != nil {
			return nil, err
		}
		updated.Amount = ledger.RoundMoney(amount)
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}

	if updated.Metadata == nil {
		updated.Metadata = &domain.TransactionMetadata{}
	}
	now := time.Now()
	updated.Metadata.Edited = true
	updated.Metadata.EditedAt = &now
	if updated.Kind == domain.KindRateChange {
		if req.OldRate != nil {
			r, err := decimal.NewFromString(*req.OldRate)
			if err != nil {
				return nil, fmt.Errorf("%w: old rate %q", domain.ErrInvalidAmount, *req.OldRate)
			}
			updated.Metadata.OldRate = &r
		}
		if req.NewRate != nil {
			r, err := decimal.NewFromString(*req.NewRate)
			if err != nil {
				return nil, fmt.Errorf("%w: new rate %q", domain.ErrInvalidAmount, *req.NewRate)
			}
			updated.Metadata.NewRate = &r
		}
	}

	proposed := l.Clone()
	for i, t := range proposed {
		if t.ID == transactionID {
			proposed[i] = updated
			break
		}
	}
	proposed.Sort()

	if req.Scope == ScopeThisAndFuture {
		rate := ledger.CurrentRate(proposed, inv.InterestRate)
		proposed = ledger.RecomputeAfterPosition(proposed, updated.Date, updated.Seq,
			ledger.FixedRate(rate), ledger.DayCounted)
	}

	return uc.persist(ctx, inv, l, proposed, "transaction.edited", updated)
}

// EditInitialTerms amends the account's opening terms: the initial
// amount and/or the start date. Both change the principal base for
// everything that follows, so the whole interest history is repriced
// with the flat quarterly formula.
func (uc *TransactionUsecase) EditInitialTerms(ctx context.Context, investorID string, initialAmount, startDate *string) (*domain.Investor, error) {
	unlock := uc.locks.lock(investorID)
	defer unlock()

	inv, l, err := uc.load(ctx, investorID)
	if err != nil {
		return nil, err
	}

	proposed := l.Clone()
	proposed.Sort()
	if len(proposed) == 0 || proposed[0].Kind != domain.KindInitial {
		return nil, fmt.Errorf("%w: account has no initial transaction", domain.ErrInvariantViolation)
	}
	initial := proposed[0]
	anchor := initial.Date

	if initialAmount != nil {
		amount, err := decimal.NewFromString(*initialAmount)
		if err != nil || !amount.IsPositive() {
			return nil, fmt.Errorf("%w: initial investment %q must be a positive amount", domain.ErrInvalidAmount, *initialAmount)
		}
		initial.Amount = ledger.RoundMoney(amount)
	}
	if startDate != nil {
		d, err := pkg.ParseDate(*startDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
		}
		if d.Before(anchor) {
			anchor = d
		}
		initial.Date = d
		proposed.Sort()
	}

	proposed = ledger.RecomputeFutureInterest(proposed, anchor,
		ledger.TimelineRate(proposed, inv.InterestRate), ledger.FlatQuarterly)

	return uc.persist(ctx, inv, l, proposed, "transaction.edited", initial)
}

// ChangeRate appends a rate-change event effective at the given date.
// With RecalculateFuture set, every later accrual is repriced at the
// new rate; without it, existing interest entries are deliberately
// left alone — an explicit operator choice, surfaced, not hidden.
func (uc *TransactionUsecase) ChangeRate(ctx context.Context, investorID string, req *ChangeRateRequest) (*domain.Investor, error) {
	unlock := uc.locks.lock(investorID)
	defer unlock()

	newRate, err := decimal.NewFromString(req.NewRate)
	if err != nil || newRate.IsNegative() {
		return nil, fmt.Errorf("%w: rate %q", domain.ErrInvalidAmount, req.NewRate)
	}
	effective, err := pkg.ParseDate(req.EffectiveDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
	}

	inv, l, err := uc.load(ctx, investorID)
	if err != nil {
		return nil, err
	}

	oldRate := ledger.RateAt(l, inv.InterestRate, effective)
	description := fmt.Sprintf("RATE CHANGE: %s%% → %s%% effective %s", oldRate, newRate, effective)
	if req.Reason != "" {
		description += " - " + req.Reason
	}

	tx := &domain.Transaction{
		ID:          utils.NewID(),
		InvestorID:  investorID,
		Date:        effective,
		Kind:        domain.KindRateChange,
		Amount:      decimal.Zero,
		Description: description,
		Metadata: &domain.TransactionMetadata{
			OldRate: &oldRate,
			NewRate: &newRate,
			Reason:  req.Reason,
		},
		Seq: l.NextSeq(),
	}

	proposed := append(l.Clone(), tx)
	proposed.Sort()

	if req.RecalculateFuture {
		proposed = ledger.RecomputeFutureInterest(proposed, effective,
			ledger.FixedRate(newRate), ledger.FlatQuarterly)
	}

	return uc.persist(ctx, inv, l, proposed, "rate.changed", tx)
}

// CalculateQuarterlyInterest posts one quarter's interest using the
// canonical flat formula on the balance at quarter start (i.e. the
// previous quarter's closing balance, reinvested interest included).
// Reinvested accruals stay in the account; otherwise a matching
// disbursement debit is posted alongside.
func (uc *TransactionUsecase) CalculateQuarterlyInterest(ctx context.Context, investorID string, req *QuarterlyInterestRequest) (*domain.Investor, error) {
	unlock := uc.locks.lock(investorID)
	defer unlock()

	q, err := pkg.ParseQuarter(req.Quarter, req.Year)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	inv, l, err := uc.load(ctx, investorID)
	if err != nil {
		return nil, err
	}

	rate := ledger.RateAt(l, inv.InterestRate, q.Start())
	balance := ledger.ComputeBalanceAt(l, q.Start(), false)
	interest := ledger.RoundMoney(ledger.QuarterlyInterest(balance, rate))
	if !interest.IsPositive() {
		return nil, fmt.Errorf("%w: no interest to post for %s (balance %s at %s%%)",
			domain.ErrInvalidAmount, q, balance.StringFixed(2), rate)
	}

	reinvest := inv.Reinvesting
	if req.Reinvest != nil {
		reinvest = *req.Reinvest
	}

	proposed := l.Clone()
	earned := &domain.Transaction{
		ID:         utils.NewID(),
		InvestorID: investorID,
		Date:       q.End(),
		Kind:       domain.KindInterestEarned,
		Amount:     interest,
		Seq:        proposed.NextSeq(),
	}
	if reinvest {
		earned.Description = fmt.Sprintf("%s Interest Earned/Reinvested @ %s%%", q, rate)
		proposed = append(proposed, earned)
	} else {
		earned.Description = fmt.Sprintf("%s Interest Earned @ %s%%", q, rate)
		paid := &domain.Transaction{
			ID:          utils.NewID(),
			InvestorID:  investorID,
			Date:        q.End(),
			Kind:        domain.KindInterestPaid,
			Amount:      interest,
			Description: fmt.Sprintf("%s Interest Disbursement", q),
			Seq:         earned.Seq + 1,
		}
		proposed = append(proposed, earned, paid)
	}
	proposed.Sort()

	return uc.persist(ctx, inv, l, proposed, "interest.posted", earned)
}

// ===============================
// INTERNALS
// ===============================

func (uc *TransactionUsecase) load(ctx context.Context, investorID string) (*domain.Investor, domain.Ledger, error) {
	inv, err := uc.investorRepo.GetByID(ctx, investorID)
	if err != nil {
		return nil, nil, err
	}
	l, err := uc.txRepo.ListByInvestor(ctx, investorID)
	if err != nil {
		return nil, nil, err
	}
	l.Sort()
	return inv, l, nil
}

// persist commits a proposed ledger as one unit: validate, rewrite
// the rows, refresh the derived snapshot, commit. On any failure the
// proposed list is discarded and the stored account is untouched.
func (uc *TransactionUsecase) persist(ctx context.Context, inv *domain.Investor, previous, proposed domain.Ledger, eventType string, subject *domain.Transaction) (*domain.Investor, error) {
	if err := proposed.Validate(); err != nil {
		return nil, err
	}

	balance := ledger.ComputeBalance(proposed)
	rate := ledger.CurrentRate(proposed, inv.InterestRate)
	startDate := proposed[0].Date
	for _, t := range proposed {
		if t.Kind == domain.KindInitial {
			startDate = t.Date
			break
		}
	}

	dbTx, err := uc.investorRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback(ctx)

	if err := uc.txRepo.ReplaceAll(ctx, dbTx, inv.ID, proposed); err != nil {
		return nil, err
	}
	if err := uc.investorRepo.UpdateSnapshot(ctx, dbTx, inv.ID, balance, rate, startDate); err != nil {
		return nil, err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit ledger mutation: %v", domain.ErrPersistenceFailure, err)
	}

	inv.Transactions = proposed
	inv.CurrentBalance = balance
	inv.InterestRate = rate
	inv.StartDate = startDate

	repriced := countRepriced(previous, proposed)
	uc.invalidateCache(ctx, inv.ID)
	uc.publishEvent(ctx, inv, eventType, subject, repriced)

	log.WithFields(log.Fields{
		"investor_id": inv.ID,
		"event":       eventType,
		"balance":     balance.StringFixed(2),
		"repriced":    repriced,
	}).Info("ledger mutation committed")

	return inv, nil
}

func (uc *TransactionUsecase) invalidateCache(ctx context.Context, investorID string) {
	if uc.redisClient == nil {
		return
	}
	keys := []string{
		fmt.Sprintf("statement:investor:%s", investorID),
		fmt.Sprintf("balance:investor:%s", investorID),
	}
	if err := uc.redisClient.Del(ctx, keys...).Err(); err != nil {
		log.WithError(err).Warn("failed to invalidate statement cache")
	}
}

func (uc *TransactionUsecase) publishEvent(ctx context.Context, inv *domain.Investor, eventType string, subject *domain.Transaction, repriced int) {
	event := &publisher.LedgerEvent{
		EventType:    eventType,
		InvestorID:   inv.ID,
		CompanyID:    inv.CompanyID,
		BalanceAfter: inv.CurrentBalance,
		Recalculated: repriced,
	}
	if subject != nil {
		event.TransactionID = subject.ID
		event.TransactionType = string(subject.Kind)
		event.Amount = subject.Amount
	}

	if uc.kafkaWriter != nil {
		payload, err := json.Marshal(event)
		if err == nil {
			err = uc.kafkaWriter.WriteMessages(ctx, kafka.Message{
				Key:   []byte(inv.ID),
				Value: payload,
			})
		}
		if err != nil {
			log.WithError(err).Warn("failed to write ledger event to kafka")
		}
	}
	if err := uc.eventPublisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("failed to publish ledger event")
	}
}

// parseAmount enforces the amount rules: decimal, and positive for
// every kind except adjustment, which may carry a signed correction.
func parseAmount(s string, kind domain.TransactionKind) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidAmount, s)
	}
	if kind != domain.KindAdjustment && !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s amount must be positive, got %s", domain.ErrInvalidAmount, kind, s)
	}
	return amount, nil
}

func findTransaction(l domain.Ledger, id string) *domain.Transaction {
	for _, t := range l {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// balanceBefore replays the ledger in order and returns the balance
// immediately before the identified transaction. Same-day entries
// with a lower seq are included: a withdrawal is validated against
// everything ordered ahead of it.
func balanceBefore(l domain.Ledger, id string) decimal.Decimal {
	sorted := make(domain.Ledger, len(l))
	copy(sorted, l)
	sorted.Sort()

	balance := decimal.Zero
	for _, t := range sorted {
		if t.ID == id {
			return balance
		}
		balance = t.Apply(balance)
	}
	return balance
}

// countRepriced counts interest rows whose amount changed between the
// stored ledger and the proposed one.
func countRepriced(previous, proposed domain.Ledger) int {
	before := make(map[string]decimal.Decimal, len(previous))
	for _, t := range previous {
		if t.Kind == domain.KindInterestEarned {
			before[t.ID] = t.Amount
		}
	}
	n := 0
	for _, t := range proposed {
		if t.Kind != domain.KindInterestEarned {
			continue
		}
		if old, ok := before[t.ID]; ok && !old.Equal(t.Amount) {
			n++
		}
	}
	return n
}
