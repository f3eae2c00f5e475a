package request

import "github.com/shopspring/decimal"

type OpenAccount struct {
	Type           string          `json:"type"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	InitialDeposit decimal.Decimal `json:"initial_deposit"`
}

type Amount struct {
	Amount decimal.Decimal `json:"amount"`
}
