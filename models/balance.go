package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Balance struct {
	ID        string          `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"userId"`
	CoinID    string          `db:"coin_id" json:"coinId"`
	Available decimal.Decimal `db:"available" json:"available"`
	OnOrder   decimal.Decimal `db:"on_order" json:"onOrder"`
	Staked    decimal.Decimal `db:"staked" json:"staked"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// BalanceView is a balance row joined with its coin for the dashboard.
type BalanceView struct {
	Balance
	CoinName  string          `db:"coin_name" json:"coinName"`
	CoinTitle string          `db:"coin_title" json:"coinTitle"`
	CoinRate  decimal.Decimal `db:"coin_rate" json:"coinRate"`
}

type AdjustBalanceInput struct {
	CoinID string          `json:"coinId" binding:"required,uuid"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Title  string          `json:"title" binding:"omitempty,max=128"`
}
