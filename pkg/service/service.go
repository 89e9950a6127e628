package service

import (
	"context"
	"time"

	"exchange_back/models"
	"exchange_back/pkg/repository"

	"github.com/shopspring/decimal"
)

type Authorization interface {
	Register(ctx context.Context, input models.RegisterInput) (models.User, error)
	Login(ctx context.Context, input models.LoginInput) (Session, error)
	VerifyOTP(ctx context.Context, input models.VerifyOTPInput) error
	ResendOTP(ctx context.Context, email string) error
	GetUser(ctx context.Context, id string) (models.User, error)
}

type Users interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id string, input models.ProfileInput) (models.User, error)
	ChangePassword(ctx context.Context, id string, input models.PasswordInput) error
	SubmitKyc(ctx context.Context, id string, input models.KycInput, document string) (models.User, error)
	SetKycStatus(ctx context.Context, id, status string) (models.User, error)
}

type Coins interface {
	ListCoins(ctx context.Context, visibleOnly bool) ([]models.Coin, error)
	GetCoin(ctx context.Context, id string) (models.Coin, error)
	CreateCoin(ctx context.Context, input models.CoinInput) (models.Coin, error)
	UpdateCoin(ctx context.Context, id string, input models.CoinInput) (models.Coin, error)
	DeleteCoin(ctx context.Context, id string) error
	SyncRate(ctx context.Context, id string) (models.Coin, error)
}

type Balances interface {
	ListBalances(ctx context.Context, userID string) ([]models.BalanceView, error)
	AdjustBalance(ctx context.Context, userID string, input models.AdjustBalanceInput) (models.Balance, error)
}

type Swapper interface {
	Swap(ctx context.Context, userID, email string, input models.SwapInput) (models.SwapResult, error)
}

type Transactions interface {
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	ListAllTransactions(ctx context.Context, status string) ([]models.Transaction, error)
	Deposit(ctx context.Context, userID string, input models.DepositInput) (models.Transaction, error)
	Withdraw(ctx context.Context, userID string, input models.WithdrawInput) (models.Transaction, error)
	Approve(ctx context.Context, id string) (models.Transaction, error)
	Reject(ctx context.Context, id string) (models.Transaction, error)
}

type Plans interface {
	ListPlans(ctx context.Context) ([]models.Plan, error)
	GetPlan(ctx context.Context, id string) (models.Plan, error)
	CreatePlan(ctx context.Context, input models.PlanInput) (models.Plan, error)
	UpdatePlan(ctx context.Context, id string, input models.PlanInput) (models.Plan, error)
	DeletePlan(ctx context.Context, id string) error
}

type Signals interface {
	ListSignals(ctx context.Context) ([]models.Signal, error)
	GetSignal(ctx context.Context, id string) (models.Signal, error)
	CreateSignal(ctx context.Context, input models.SignalInput) (models.Signal, error)
	UpdateSignal(ctx context.Context, id string, input models.SignalInput) (models.Signal, error)
	DeleteSignal(ctx context.Context, id string) error
}

type Stakes interface {
	ListStakes(ctx context.Context, enabledOnly bool) ([]models.Staking, error)
	GetStake(ctx context.Context, id string) (models.Staking, error)
	CreateStake(ctx context.Context, input models.StakingInput) (models.Staking, error)
	UpdateStake(ctx context.Context, id string, input models.StakingInput) (models.Staking, error)
	DeleteStake(ctx context.Context, id string) error
}

type CopyTraders interface {
	ListCopyTraders(ctx context.Context, enabledOnly bool) ([]models.CopyTrader, error)
	GetCopyTrader(ctx context.Context, id string) (models.CopyTrader, error)
	CreateCopyTrader(ctx context.Context, input models.CopyTraderInput) (models.CopyTrader, error)
	UpdateCopyTrader(ctx context.Context, id string, input models.CopyTraderInput) (models.CopyTrader, error)
	DeleteCopyTrader(ctx context.Context, id string) error
}

// Notifier delivers outgoing mail.
type Notifier interface {
	SendOTP(ctx context.Context, email, code string) error
	NotifySwap(ctx context.Context, userEmail string, swap models.SwapExecution) error
}

type OTPStore interface {
	Save(ctx context.Context, email, code string) error
	Get(ctx context.Context, email string) (string, bool, error)
	// Fail records a wrong guess and returns the failures counted so far.
	Fail(ctx context.Context, email string) (int, error)
	Delete(ctx context.Context, email string) error
}

type TokenIssuer interface {
	Issue(userID, email, role string) (string, time.Time, error)
}

type RateSource interface {
	USDRate(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// DepositVerifier checks a deposit transaction on chain.
type DepositVerifier interface {
	TransactionConfirmed(ctx context.Context, txID string) (bool, error)
}

type Deps struct {
	Tokens   TokenIssuer
	Notifier Notifier
	OTPs     OTPStore
	Rates    RateSource
	Verifier DepositVerifier
	FeeRate  decimal.Decimal
}

type Service struct {
	Authorization
	Users
	Coins
	Balances
	Swapper
	Transactions
	Plans
	Signals
	Stakes
	CopyTraders
}

func NewService(repos *repository.Repository, deps Deps) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Authorization, deps.Tokens, deps.OTPs, deps.Notifier),
		Users:         NewUsersService(repos.Users, repos.Authorization),
		Coins:         NewCoinService(repos.Coins, deps.Rates),
		Balances:      NewBalanceService(repos.Balances, repos.Authorization, repos.Coins),
		Swapper:       NewSwapService(repos.Coins, repos.Balances, deps.Notifier, deps.FeeRate),
		Transactions:  NewTransactionService(repos.Transactions, repos.Coins, deps.Verifier),
		Plans:         NewPlanService(repos.Plans),
		Signals:       NewSignalService(repos.Signals),
		Stakes:        NewStakingService(repos.Stakes),
		CopyTraders:   NewCopyTraderService(repos.CopyTraders),
	}
}
