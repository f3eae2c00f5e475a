package response

import "github.com/shopspring/decimal"

type OpenAccount struct {
	Number int `json:"number"`
}

func NewOpenAccount(number int) OpenAccount {
	return OpenAccount{Number: number}
}

type GetBalance struct {
	Balance decimal.Decimal `json:"balance"`
}

func NewGetBalance(balance decimal.Decimal) GetBalance {
	return GetBalance{Balance: balance}
}

type GetInterest struct {
	Interest decimal.Decimal `json:"interest"`
}

func NewGetInterest(interest decimal.Decimal) GetInterest {
	return GetInterest{Interest: interest}
}
