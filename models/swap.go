package models

import "github.com/shopspring/decimal"

// SwapInput is left without binding tags: the swap checks run in a fixed order
// in the service and each has its own message.
type SwapInput struct {
	FromCoinID string           `json:"fromCoinId"`
	ToCoinID   string           `json:"toCoinId"`
	FromAmount *decimal.Decimal `json:"fromAmount"`
	ToAmount   *decimal.Decimal `json:"toAmount"`
}

// SwapExecution is a validated swap ready to be written.
type SwapExecution struct {
	UserID     string
	From       Coin
	To         Coin
	FromAmount decimal.Decimal
	ToAmount   decimal.Decimal
}

type SwapResult struct {
	FromBalance Balance `json:"fromBalance"`
	ToBalance   Balance `json:"toBalance"`
}
