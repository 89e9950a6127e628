package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Coin struct {
	ID                  string          `json:"id" db:"id"`
	Name                string          `json:"name" db:"name"`
	Title               string          `json:"title" db:"title"`
	PriceID             string          `json:"priceId" db:"price_id"`
	Rate                decimal.Decimal `json:"rate" db:"rate"`
	Network             string          `json:"network" db:"network"`
	DepositAddress      string          `json:"depositAddress" db:"deposit_address"`
	DepositInstructions string          `json:"depositInstructions" db:"deposit_instructions"`
	WithMin             decimal.Decimal `json:"withMin" db:"with_min"`
	WithMax             decimal.Decimal `json:"withMax" db:"with_max"`
	CoinVisible         bool            `json:"coinVisible" db:"coin_visible"`
	CreatedAt           time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time       `json:"updatedAt" db:"updated_at"`
}

// CoinInput is shared by create and update.
type CoinInput struct {
	Name                string          `json:"name" binding:"required,min=2,max=16,alphanum"`
	Title               string          `json:"title" binding:"required,min=2,max=64"`
	PriceID             string          `json:"priceId" binding:"omitempty,max=64"`
	Rate                decimal.Decimal `json:"rate" binding:"required,gt=0"`
	Network             string          `json:"network" binding:"required,max=32"`
	DepositAddress      string          `json:"depositAddress" binding:"omitempty,max=128"`
	DepositInstructions string          `json:"depositInstructions" binding:"omitempty,max=2000"`
	WithMin             decimal.Decimal `json:"withMin" binding:"gte=0"`
	WithMax             decimal.Decimal `json:"withMax" binding:"required,gt=0"`
	CoinVisible         bool            `json:"coinVisible"`
}

func (in CoinInput) Coin() Coin {
	return Coin{
		Name:                in.Name,
		Title:               in.Title,
		PriceID:             in.PriceID,
		Rate:                in.Rate,
		Network:             in.Network,
		DepositAddress:      in.DepositAddress,
		DepositInstructions: in.DepositInstructions,
		WithMin:             in.WithMin,
		WithMax:             in.WithMax,
		CoinVisible:         in.CoinVisible,
	}
}
