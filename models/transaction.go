package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TxDeposit    = "DEPOSIT"
	TxWithdraw   = "WITHDRAW"
	TxSwapIn     = "SWAP_IN"
	TxSwapOut    = "SWAP_OUT"
	TxAdjustment = "ADJUSTMENT"
)

const (
	TxPending   = "PENDING"
	TxCompleted = "COMPLETED"
	TxRejected  = "REJECTED"
)

type Transaction struct {
	ID        string          `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"userId"`
	CoinID    *string         `db:"coin_id" json:"coinId"`
	Type      string          `db:"type" json:"type"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Status    string          `db:"status" json:"status"`
	Title     string          `db:"title" json:"title"`
	TxHash    string          `db:"tx_hash" json:"txHash,omitempty"`
	Address   string          `db:"address" json:"address,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

type DepositInput struct {
	CoinID string          `json:"coinId" binding:"required,uuid"`
	Amount decimal.Decimal `json:"amount" binding:"required,gt=0"`
	TxHash string          `json:"txHash" binding:"omitempty,max=128"`
}

type WithdrawInput struct {
	CoinID  string          `json:"coinId" binding:"required,uuid"`
	Amount  decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Address string          `json:"address" binding:"required,max=128"`
}
