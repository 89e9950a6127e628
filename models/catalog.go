package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Plan struct {
	ID           string          `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	MinAmount    decimal.Decimal `db:"min_amount" json:"minAmount"`
	MaxAmount    decimal.Decimal `db:"max_amount" json:"maxAmount"`
	ROI          decimal.Decimal `db:"roi" json:"roi"`
	DurationDays int             `db:"duration_days" json:"durationDays"`
	Description  string          `db:"description" json:"description"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updatedAt"`
}

type PlanInput struct {
	Name         string          `json:"name" binding:"required,min=2,max=64"`
	MinAmount    decimal.Decimal `json:"minAmount" binding:"gte=0"`
	MaxAmount    decimal.Decimal `json:"maxAmount" binding:"required,gt=0"`
	ROI          decimal.Decimal `json:"roi" binding:"required,gt=0,lte=1000"`
	DurationDays int             `json:"durationDays" binding:"required,min=1,max=3650"`
	Description  string          `json:"description" binding:"omitempty,max=2000"`
}

const (
	SignalBuy    = "BUY"
	SignalSell   = "SELL"
	SignalActive = "ACTIVE"
	SignalClosed = "CLOSED"
)

type Signal struct {
	ID          string          `db:"id" json:"id"`
	Pair        string          `db:"pair" json:"pair"`
	Action      string          `db:"action" json:"action"`
	EntryPrice  decimal.Decimal `db:"entry_price" json:"entryPrice"`
	TargetPrice decimal.Decimal `db:"target_price" json:"targetPrice"`
	StopLoss    decimal.Decimal `db:"stop_loss" json:"stopLoss"`
	Status      string          `db:"status" json:"status"`
	Note        string          `db:"note" json:"note"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

type SignalInput struct {
	Pair        string          `json:"pair" binding:"required,min=3,max=32"`
	Action      string          `json:"action" binding:"required,oneof=BUY SELL"`
	EntryPrice  decimal.Decimal `json:"entryPrice" binding:"required,gt=0"`
	TargetPrice decimal.Decimal `json:"targetPrice" binding:"required,gt=0"`
	StopLoss    decimal.Decimal `json:"stopLoss" binding:"gte=0"`
	Status      string          `json:"status" binding:"required,oneof=ACTIVE CLOSED"`
	Note        string          `json:"note" binding:"omitempty,max=2000"`
}

type Staking struct {
	ID        string          `db:"id" json:"id"`
	CoinID    string          `db:"coin_id" json:"coinId"`
	Title     string          `db:"title" json:"title"`
	APY       decimal.Decimal `db:"apy" json:"apy"`
	MinAmount decimal.Decimal `db:"min_amount" json:"minAmount"`
	LockDays  int             `db:"lock_days" json:"lockDays"`
	Enabled   bool            `db:"enabled" json:"enabled"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

type StakingInput struct {
	CoinID    string          `json:"coinId" binding:"required,uuid"`
	Title     string          `json:"title" binding:"required,min=2,max=64"`
	APY       decimal.Decimal `json:"apy" binding:"required,gt=0,lte=1000"`
	MinAmount decimal.Decimal `json:"minAmount" binding:"gte=0"`
	LockDays  int             `json:"lockDays" binding:"min=0,max=3650"`
	Enabled   bool            `json:"enabled"`
}

type CopyTrader struct {
	ID            string          `db:"id" json:"id"`
	Name          string          `db:"name" json:"name"`
	AvatarURL     string          `db:"avatar_url" json:"avatarUrl"`
	WinRate       decimal.Decimal `db:"win_rate" json:"winRate"`
	ProfitShare   decimal.Decimal `db:"profit_share" json:"profitShare"`
	Followers     int             `db:"followers" json:"followers"`
	MinCopyAmount decimal.Decimal `db:"min_copy_amount" json:"minCopyAmount"`
	Description   string          `db:"description" json:"description"`
	Enabled       bool            `db:"enabled" json:"enabled"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

type CopyTraderInput struct {
	Name          string          `json:"name" binding:"required,min=2,max=64"`
	AvatarURL     string          `json:"avatarUrl" binding:"omitempty,url,max=512"`
	WinRate       decimal.Decimal `json:"winRate" binding:"gte=0,lte=100"`
	ProfitShare   decimal.Decimal `json:"profitShare" binding:"gte=0,lte=100"`
	Followers     int             `json:"followers" binding:"min=0"`
	MinCopyAmount decimal.Decimal `json:"minCopyAmount" binding:"gte=0"`
	Description   string          `json:"description" binding:"omitempty,max=2000"`
	Enabled       bool            `json:"enabled"`
}
