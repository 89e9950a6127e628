package service

import (
	"context"
	"strings"

	"exchange_back/models"
	"exchange_back/pkg/repository"

	"github.com/pkg/errors"
)

type BalanceService struct {
	repos repository.Balances
	users repository.Authorization
	coins repository.Coins
}

func NewBalanceService(repos repository.Balances, users repository.Authorization, coins repository.Coins) *BalanceService {
	return &BalanceService{repos: repos, users: users, coins: coins}
}

func (s *BalanceService) ListBalances(ctx context.Context, userID string) ([]models.BalanceView, error) {
	return s.repos.ListBalances(ctx, userID)
}

// AdjustBalance applies a signed admin correction to a user's available amount.
func (s *BalanceService) AdjustBalance(ctx context.Context, userID string, input models.AdjustBalanceInput) (models.Balance, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return models.Balance{}, notFoundOr(err, "user")
	}
	coin, err := s.coins.GetCoin(ctx, input.CoinID)
	if err != nil {
		return models.Balance{}, notFoundOr(err, "coin")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = "Balance adjustment " + coin.Name
	}
	balance, err := s.repos.AdjustBalance(ctx, models.Transaction{
		UserID: userID,
		CoinID: &coin.ID,
		Type:   models.TxAdjustment,
		Amount: input.Amount,
		Status: models.TxCompleted,
		Title:  title,
	})
	if errors.Is(err, repository.ErrInsufficientBalance) {
		return models.Balance{}, invalid("adjustment would make the balance negative")
	}
	return balance, err
}
