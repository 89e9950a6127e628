package repository

import (
	"context"

	"exchange_back/models"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotPending          = errors.New("transaction is not pending")
	ErrDuplicate           = errors.New("duplicate record")
	ErrUnknownCoin         = errors.New("coin does not exist")
)

type Authorization interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	SetEmailVerified(ctx context.Context, id string) error
}

type Users interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id, name, walletAddress string) (models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SubmitKyc(ctx context.Context, id, docType, docNumber, document string) (models.User, error)
	SetKycStatus(ctx context.Context, id, status string) (models.User, error)
	SetRole(ctx context.Context, email, role string) error
}

type Coins interface {
	ListCoins(ctx context.Context, visibleOnly bool) ([]models.Coin, error)
	GetCoin(ctx context.Context, id string) (models.Coin, error)
	CreateCoin(ctx context.Context, coin models.Coin) (models.Coin, error)
	UpdateCoin(ctx context.Context, coin models.Coin) (models.Coin, error)
	UpdateRate(ctx context.Context, id string, rate decimal.Decimal) (models.Coin, error)
	DeleteCoin(ctx context.Context, id string) error
}

type Balances interface {
	ListBalances(ctx context.Context, userID string) ([]models.BalanceView, error)
	GetBalance(ctx context.Context, userID, coinID string) (models.Balance, error)
	ExecuteSwap(ctx context.Context, swap models.SwapExecution) (models.SwapResult, error)
	AdjustBalance(ctx context.Context, entry models.Transaction) (models.Balance, error)
}

type Transactions interface {
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	ListAllTransactions(ctx context.Context, status string) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id string) (models.Transaction, error)
	CreateDeposit(ctx context.Context, entry models.Transaction) (models.Transaction, error)
	CreateWithdrawal(ctx context.Context, entry models.Transaction) (models.Transaction, error)
	Settle(ctx context.Context, id, status string) (models.Transaction, error)
}

type Plans interface {
	ListPlans(ctx context.Context) ([]models.Plan, error)
	GetPlan(ctx context.Context, id string) (models.Plan, error)
	CreatePlan(ctx context.Context, plan models.Plan) (models.Plan, error)
	UpdatePlan(ctx context.Context, plan models.Plan) (models.Plan, error)
	DeletePlan(ctx context.Context, id string) error
}

type Signals interface {
	ListSignals(ctx context.Context) ([]models.Signal, error)
	GetSignal(ctx context.Context, id string) (models.Signal, error)
	CreateSignal(ctx context.Context, signal models.Signal) (models.Signal, error)
	UpdateSignal(ctx context.Context, signal models.Signal) (models.Signal, error)
	DeleteSignal(ctx context.Context, id string) error
}

type Stakes interface {
	ListStakes(ctx context.Context, enabledOnly bool) ([]models.Staking, error)
	GetStake(ctx context.Context, id string) (models.Staking, error)
	CreateStake(ctx context.Context, stake models.Staking) (models.Staking, error)
	UpdateStake(ctx context.Context, stake models.Staking) (models.Staking, error)
	DeleteStake(ctx context.Context, id string) error
}

type CopyTraders interface {
	ListCopyTraders(ctx context.Context, enabledOnly bool) ([]models.CopyTrader, error)
	GetCopyTrader(ctx context.Context, id string) (models.CopyTrader, error)
	CreateCopyTrader(ctx context.Context, trader models.CopyTrader) (models.CopyTrader, error)
	UpdateCopyTrader(ctx context.Context, trader models.CopyTrader) (models.CopyTrader, error)
	DeleteCopyTrader(ctx context.Context, id string) error
}

type Repository struct {
	Authorization
	Users
	Coins
	Balances
	Transactions
	Plans
	Signals
	Stakes
	CopyTraders
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Authorization: NewAuthPostgres(db),
		Users:         NewUsersPostgres(db),
		Coins:         NewCoinPostgres(db),
		Balances:      NewBalancePostgres(db),
		Transactions:  NewTransactionPostgres(db),
		Plans:         NewPlanPostgres(db),
		Signals:       NewSignalPostgres(db),
		Stakes:        NewStakingPostgres(db),
		CopyTraders:   NewCopyTraderPostgres(db),
	}
}
