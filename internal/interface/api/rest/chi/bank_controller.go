package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/DrWallflower/minibank/internal/application/interfaces"
	"github.com/DrWallflower/minibank/internal/application/params"
	"github.com/DrWallflower/minibank/internal/interface/api/rest/header"
	"github.com/DrWallflower/minibank/internal/interface/api/rest/request"
	"github.com/DrWallflower/minibank/internal/interface/api/rest/response"
	"github.com/DrWallflower/minibank/internal/models/errs"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type mutationFunc func(ctx context.Context, number int, amount decimal.Decimal) (decimal.Decimal, error)

type BankController struct {
	service interfaces.BankService
}

// NewBankController registers the ledger routes with additional options.
func NewBankController(service interfaces.BankService, options ChiServerOptions) {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}

	c := BankController{
		service: service,
	}

	r.Group(func(r chi.Router) {
		for _, middleware := range options.Middlewares {
			r.Use(middleware)
		}
		r.Post(options.BaseURL+"/accounts", c.OpenAccount)
		r.Get(options.BaseURL+"/accounts", c.ListAccounts)
		r.Get(options.BaseURL+"/accounts/{number}/balance", c.GetBalance)
		r.Get(options.BaseURL+"/accounts/{number}/transactions", c.GetTransactions)
		r.Get(options.BaseURL+"/accounts/{number}/interest", c.GetInterest)
		r.Post(options.BaseURL+"/accounts/{number}/deposit", c.Deposit)
		r.Post(options.BaseURL+"/accounts/{number}/withdraw", c.Withdraw)
	})
}

// Open a new account (POST /api/accounts HTTP/1.1).
func (c *BankController) OpenAccount(w http.ResponseWriter, r *http.Request) {
	if !header.IsApplicationJSONContentType(r) {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	defer r.Body.Close()

	var payload request.OpenAccount

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}

	p := params.NewOpenAccount(payload.Type, payload.FirstName, payload.LastName, payload.InitialDeposit)

	number, err := c.service.OpenAccount(r.Context(), p)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	if err = json.NewEncoder(w).Encode(response.NewOpenAccount(number)); err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}
}

// List all accounts, sorted for display (GET /api/accounts HTTP/1.1).
func (c *BankController) ListAccounts(w http.ResponseWriter, r *http.Request) {
	lines := c.service.ListAccounts(r.Context())

	if err := json.NewEncoder(w).Encode(lines); err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}
}

// Get account balance (GET /api/accounts/{number}/balance HTTP/1.1).
func (c *BankController) GetBalance(w http.ResponseWriter, r *http.Request) {
	number, err := accountNumber(r)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	balance, err := c.service.Balance(r.Context(), number)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	if err = json.NewEncoder(w).Encode(response.NewGetBalance(balance)); err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}
}

// Get account statement (GET /api/accounts/{number}/transactions HTTP/1.1).
func (c *BankController) GetTransactions(w http.ResponseWriter, r *http.Request) {
	number, err := accountNumber(r)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	lines, err := c.service.Transactions(r.Context(), number)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	if err = json.NewEncoder(w).Encode(lines); err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}
}

// Compute account interest (GET /api/accounts/{number}/interest HTTP/1.1).
func (c *BankController) GetInterest(w http.ResponseWriter, r *http.Request) {
	number, err := accountNumber(r)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	interest, err := c.service.Interest(r.Context(), number)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	if err = json.NewEncoder(w).Encode(response.NewGetInterest(interest)); err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}
}

// Deposit (POST /api/accounts/{number}/deposit HTTP/1.1).
func (c *BankController) Deposit(w http.ResponseWriter, r *http.Request) {
	c.mutate(w, r, c.service.Deposit)
}

// Withdraw (POST /api/accounts/{number}/withdraw HTTP/1.1).
func (c *BankController) Withdraw(w http.ResponseWriter, r *http.Request) {
	c.mutate(w, r, c.service.Withdraw)
}

func (c *BankController) mutate(w http.ResponseWriter, r *http.Request, op mutationFunc) {
	if !header.IsApplicationJSONContentType(r) {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	number, err := accountNumber(r)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	defer r.Body.Close()

	var payload request.Amount

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}

	balance, err := op(r.Context(), number, payload.Amount)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	if err = json.NewEncoder(w).Encode(response.NewGetBalance(balance)); err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}
}

// ErrorHandlerFunc handles sending of an error in the JSON format,
// writing appropriate status code and handling the failure to marshal that.
func (c *BankController) ErrorHandlerFunc(w http.ResponseWriter, _ *http.Request, err error) {
	errJSON := errs.JSON{Error: err.Error()}
	code := http.StatusInternalServerError

	switch {
	// Status Bad Request (400).
	case errors.Is(err, errs.ErrInvalidRequest) ||
		errors.Is(err, errs.ErrInvalidAmount) ||
		errors.Is(err, errs.ErrUnknownAccountType):
		code = http.StatusBadRequest

	// Status Payment Required (402).
	case errors.Is(err, errs.ErrInsufficientFunds) ||
		errors.Is(err, errs.ErrInsufficientCredit):
		code = http.StatusPaymentRequired

	// Status Not Found (404).
	case errors.Is(err, errs.ErrAccountNotFound):
		code = http.StatusNotFound
	}

	w.WriteHeader(code)

	if err = json.NewEncoder(w).Encode(errJSON); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func accountNumber(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "number")
	number, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: account number %q", errs.ErrInvalidRequest, raw)
	}
	return number, nil
}
