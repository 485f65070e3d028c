package hrest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"ledger-service/internal/domain"
	"ledger-service/internal/pkg"
	"ledger-service/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// LedgerRestHandler exposes the account mutation service and the
// statement projections over HTTP.
type LedgerRestHandler struct {
	accountUC   *usecase.AccountUsecase
	txUC        *usecase.TransactionUsecase
	statementUC *usecase.StatementUsecase
}

func NewLedgerRestHandler(
	accountUC *usecase.AccountUsecase,
	txUC *usecase.TransactionUsecase,
	statementUC *usecase.StatementUsecase,
) *LedgerRestHandler {
	return &LedgerRestHandler{
		accountUC:   accountUC,
		txUC:        txUC,
		statementUC: statementUC,
	}
}

// Router builds the chi router with the standard middleware stack.
func (h *LedgerRestHandler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	h.registerRoutes(r)
	return r
}

func (h *LedgerRestHandler) registerRoutes(r chi.Router) {
	r.Route("/companies", func(r chi.Router) {
		r.Post("/", h.CreateCompany)
		r.Get("/", h.ListCompanies)
		r.Get("/{companyID}", h.GetCompany)
	})

	r.Route("/investors", func(r chi.Router) {
		r.Post("/", h.CreateAccount)
		r.Get("/", h.ListAccounts)
		r.Get("/{investorID}", h.GetAccount)
		r.Patch("/{investorID}", h.UpdateAccount)
		r.Delete("/{investorID}", h.ArchiveAccount)

		r.Post("/{investorID}/transactions", h.AddTransaction)
		r.Put("/{investorID}/transactions/{txID}", h.EditTransaction)
		r.Delete("/{investorID}/transactions/{txID}", h.DeleteTransaction)

		r.Post("/{investorID}/rate-change", h.ChangeRate)
		r.Post("/{investorID}/interest/quarterly", h.CalculateQuarterlyInterest)

		r.Get("/{investorID}/statement", h.GetStatement)
		r.Get("/{investorID}/balance", h.GetBalance)
		r.Get("/{investorID}/rate-preview", h.GetRatePreview)
		r.Get("/{investorID}/interest/prorated", h.GetQuarterlyProrated)
	})
}

// ===============================
// COMPANIES
// ===============================

func (h *LedgerRestHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	company, err := h.accountUC.CreateCompany(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSON(w, http.StatusCreated, company)
}

func (h *LedgerRestHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.accountUC.ListCompanies(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, companies)
}

func (h *LedgerRestHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := h.accountUC.GetCompany(r.Context(), chi.URLParam(r, "companyID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, company)
}

// ===============================
// INVESTOR ACCOUNTS
// ===============================

func (h *LedgerRestHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inv, err := h.accountUC.CreateAccount(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSON(w, http.StatusCreated, inv)
}

func (h *LedgerRestHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	f := &domain.InvestorFilter{}
	if v := r.URL.Query().Get("company_id"); v != "" {
		f.CompanyID = &v
	}
	if v := r.URL.Query().Get("active"); v != "" {
		active := v == "true"
		f.IsActive = &active
	}
	if v := r.URL.Query().Get("name"); v != "" {
		f.Name = &v
	}
	investors, err := h.accountUC.ListAccounts(r.Context(), f)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, investors)
}

func (h *LedgerRestHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	inv, err := h.accountUC.GetAccount(r.Context(), chi.URLParam(r, "investorID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, inv)
}

// updateAccountJSON is the PATCH surface: contact details plus the
// ledger-affecting opening terms, which run through the cascade.
type updateAccountJSON struct {
	Name              *string `json:"name"`
	Address           *string `json:"address"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
	Reinvesting       *bool   `json:"reinvesting"`
	IsActive          *bool   `json:"is_active"`
	InitialInvestment *string `json:"initial_investment"`
	StartDate         *string `json:"start_date"`
}

func (h *LedgerRestHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "investorID")

	var in updateAccountJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if in.InitialInvestment != nil || in.StartDate != nil {
		if _, err := h.txUC.EditInitialTerms(r.Context(), investorID, in.InitialInvestment, in.StartDate); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	details := &domain.InvestorDetails{
		Name:        in.Name,
		Address:     in.Address,
		Email:       in.Email,
		Phone:       in.Phone,
		Reinvesting: in.Reinvesting,
		IsActive:    in.IsActive,
	}
	inv, err := h.accountUC.UpdateDetails(r.Context(), investorID, details)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, inv)
}

func (h *LedgerRestHandler) ArchiveAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.accountUC.Archive(r.Context(), chi.URLParam(r, "investorID")); err != nil {
		writeDomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"result": "archived"})
}

// ===============================
// LEDGER MUTATIONS
// ===============================

func (h *LedgerRestHandler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var req usecase.AddTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inv, err := h.txUC.AddTransaction(r.Context(), chi.URLParam(r, "investorID"), &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSON(w, http.StatusCreated, inv)
}

func (h *LedgerRestHandler) EditTransaction(w http.ResponseWriter, r *http.Request) {
	var req usecase.EditTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inv, err := h.txUC.EditTransaction(r.Context(),
		chi.URLParam(r, "investorID"), chi.URLParam(r, "txID"), &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, inv)
}

func (h *LedgerRestHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	inv, err := h.txUC.DeleteTransaction(r.Context(),
		chi.URLParam(r, "investorID"), chi.URLParam(r, "txID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, inv)
}

func (h *LedgerRestHandler) ChangeRate(w http.ResponseWriter, r *http.Request) {
	var req usecase.ChangeRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inv, err := h.txUC.ChangeRate(r.Context(), chi.URLParam(r, "investorID"), &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, inv)
}

func (h *LedgerRestHandler) CalculateQuarterlyInterest(w http.ResponseWriter, r *http.Request) {
	var req usecase.QuarterlyInterestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inv, err := h.txUC.CalculateQuarterlyInterest(r.Context(), chi.URLParam(r, "investorID"), &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSON(w, http.StatusCreated, inv)
}

// ===============================
// STATEMENTS
// ===============================

func (h *LedgerRestHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	var start, end pkg.Date
	var err error
	if v := r.URL.Query().Get("start"); v != "" {
		if start, err = pkg.ParseDate(v); err != nil {
			Error(w, http.StatusBadRequest, "invalid start date: "+v)
			return
		}
	}
	if v := r.URL.Query().Get("end"); v != "" {
		if end, err = pkg.ParseDate(v); err != nil {
			Error(w, http.StatusBadRequest, "invalid end date: "+v)
			return
		}
	}
	stmt, err := h.statementUC.GetStatement(r.Context(), chi.URLParam(r, "investorID"), start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, stmt)
}

func (h *LedgerRestHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.statementUC.GetCurrentBalance(r.Context(), chi.URLParam(r, "investorID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"balance": balance.StringFixed(2)})
}

func (h *LedgerRestHandler) GetRatePreview(w http.ResponseWriter, r *http.Request) {
	preview, err := h.statementUC.GetWeightedRatePreview(r.Context(), chi.URLParam(r, "investorID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, preview)
}

func (h *LedgerRestHandler) GetQuarterlyProrated(w http.ResponseWriter, r *http.Request) {
	quarter := r.URL.Query().Get("quarter")
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid year")
		return
	}
	interest, err := h.statementUC.GetQuarterlyProrated(r.Context(), chi.URLParam(r, "investorID"), quarter, year)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"interest": interest.StringFixed(2)})
}

// writeDomainError maps the ledger error taxonomy onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidDate), errors.Is(err, domain.ErrInvalidRequest):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvariantViolation):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrPersistenceFailure):
		Error(w, http.StatusBadGateway, err.Error())
	default:
		Error(w, http.StatusInternalServerError, err.Error())
	}
}
