package service

import (
	"context"
	"strings"

	"exchange_back/internal/wallet"
	"exchange_back/models"
	"exchange_back/pkg/repository"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type TransactionService struct {
	repos    repository.Transactions
	coins    repository.Coins
	verifier DepositVerifier
}

func NewTransactionService(repos repository.Transactions, coins repository.Coins, verifier DepositVerifier) *TransactionService {
	return &TransactionService{repos: repos, coins: coins, verifier: verifier}
}

func (s *TransactionService) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.repos.ListTransactions(ctx, userID)
}

func (s *TransactionService) ListAllTransactions(ctx context.Context, status string) ([]models.Transaction, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	switch status {
	case "", models.TxPending, models.TxCompleted, models.TxRejected:
	default:
		return nil, invalidField("status", "status must be one of PENDING COMPLETED REJECTED")
	}
	return s.repos.ListAllTransactions(ctx, status)
}

func (s *TransactionService) visibleCoin(ctx context.Context, id string) (models.Coin, error) {
	coin, err := s.coins.GetCoin(ctx, id)
	if err != nil {
		return coin, notFoundOr(err, "coin")
	}
	if !coin.CoinVisible {
		return coin, invalid("coin %s is not available", coin.Name)
	}
	return coin, nil
}

// Deposit records the user's claim; the balance is credited on approval.
func (s *TransactionService) Deposit(ctx context.Context, userID string, input models.DepositInput) (models.Transaction, error) {
	coin, err := s.visibleCoin(ctx, input.CoinID)
	if err != nil {
		return models.Transaction{}, err
	}
	return s.repos.CreateDeposit(ctx, models.Transaction{
		UserID: userID,
		CoinID: &coin.ID,
		Type:   models.TxDeposit,
		Amount: input.Amount,
		Status: models.TxPending,
		Title:  "Deposit " + coin.Name,
		TxHash: strings.TrimSpace(input.TxHash),
	})
}

// Withdraw reserves the amount and queues the request for approval. The coin's
// withMin/withMax bound the USD value of the request.
func (s *TransactionService) Withdraw(ctx context.Context, userID string, input models.WithdrawInput) (models.Transaction, error) {
	coin, err := s.visibleCoin(ctx, input.CoinID)
	if err != nil {
		return models.Transaction{}, err
	}

	usd := input.Amount.Mul(coin.Rate)
	if usd.LessThan(coin.WithMin) {
		return models.Transaction{}, invalid("minimum withdrawal is %s USD", coin.WithMin.String())
	}
	if coin.WithMax.IsPositive() && usd.GreaterThan(coin.WithMax) {
		return models.Transaction{}, invalid("maximum withdrawal is %s USD", coin.WithMax.String())
	}

	address := strings.TrimSpace(input.Address)
	if err := wallet.ValidateAddress(coin.Network, address); err != nil {
		return models.Transaction{}, invalidField("address", "address is not valid for network "+coin.Network)
	}

	t, err := s.repos.CreateWithdrawal(ctx, models.Transaction{
		UserID:  userID,
		CoinID:  &coin.ID,
		Type:    models.TxWithdraw,
		Amount:  input.Amount,
		Status:  models.TxPending,
		Title:   "Withdraw " + coin.Name,
		Address: address,
	})
	if errors.Is(err, repository.ErrInsufficientBalance) {
		return models.Transaction{}, invalid("insufficient balance")
	}
	return t, err
}

// Approve completes a pending deposit or withdrawal. TRC20 deposits carrying a
// tx hash are checked on chain first when a verifier is configured.
func (s *TransactionService) Approve(ctx context.Context, id string) (models.Transaction, error) {
	t, err := s.repos.GetTransaction(ctx, id)
	if err != nil {
		return t, notFoundOr(err, "transaction")
	}
	if t.Status != models.TxPending {
		return t, conflict("transaction is not pending")
	}

	if t.Type == models.TxDeposit && t.TxHash != "" && t.CoinID != nil && s.verifier != nil {
		coin, err := s.coins.GetCoin(ctx, *t.CoinID)
		if err != nil {
			return t, notFoundOr(err, "coin")
		}
		if isTron(coin.Network) {
			ok, err := s.verifier.TransactionConfirmed(ctx, t.TxHash)
			if err != nil {
				return t, errors.Wrap(err, "verify deposit")
			}
			if !ok {
				return t, invalid("deposit transaction is not confirmed on chain")
			}
		}
	}
	return s.settle(ctx, id, models.TxCompleted)
}

func (s *TransactionService) Reject(ctx context.Context, id string) (models.Transaction, error) {
	return s.settle(ctx, id, models.TxRejected)
}

func (s *TransactionService) settle(ctx context.Context, id, status string) (models.Transaction, error) {
	t, err := s.repos.Settle(ctx, id, status)
	if errors.Is(err, repository.ErrNotPending) {
		return t, conflict("transaction cannot be settled")
	}
	if err != nil {
		return t, notFoundOr(err, "transaction")
	}
	logrus.WithFields(logrus.Fields{"transaction_id": id, "status": status}).Info("transaction settled")
	return t, nil
}

func isTron(network string) bool {
	switch strings.ToUpper(network) {
	case "TRC20", "TRON", "TRX":
		return true
	}
	return false
}
