package service

import (
	"context"
	"strings"

	"exchange_back/models"
	"exchange_back/pkg/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type CoinService struct {
	repos repository.Coins
	rates RateSource
}

func NewCoinService(repos repository.Coins, rates RateSource) *CoinService {
	return &CoinService{repos: repos, rates: rates}
}

func (s *CoinService) ListCoins(ctx context.Context, visibleOnly bool) ([]models.Coin, error) {
	return s.repos.ListCoins(ctx, visibleOnly)
}

func (s *CoinService) GetCoin(ctx context.Context, id string) (models.Coin, error) {
	coin, err := s.repos.GetCoin(ctx, id)
	return coin, notFoundOr(err, "coin")
}

func checkCoinInput(input models.CoinInput) error {
	if input.WithMax.LessThan(input.WithMin) {
		return invalidField("withMax", "withMax must not be less than withMin")
	}
	return nil
}

func (s *CoinService) CreateCoin(ctx context.Context, input models.CoinInput) (models.Coin, error) {
	if err := checkCoinInput(input); err != nil {
		return models.Coin{}, err
	}
	coin := input.Coin()
	coin.ID = uuid.NewString()
	coin.Name = strings.ToUpper(coin.Name)

	created, err := s.repos.CreateCoin(ctx, coin)
	if errors.Is(err, repository.ErrDuplicate) {
		return models.Coin{}, conflict("coin " + coin.Name + " already exists")
	}
	if err != nil {
		return models.Coin{}, err
	}
	logrus.WithField("coin", created.Name).Info("coin listed")
	return created, nil
}

func (s *CoinService) UpdateCoin(ctx context.Context, id string, input models.CoinInput) (models.Coin, error) {
	if err := checkCoinInput(input); err != nil {
		return models.Coin{}, err
	}
	coin := input.Coin()
	coin.ID = id
	coin.Name = strings.ToUpper(coin.Name)

	updated, err := s.repos.UpdateCoin(ctx, coin)
	if errors.Is(err, repository.ErrDuplicate) {
		return models.Coin{}, conflict("coin " + coin.Name + " already exists")
	}
	return updated, notFoundOr(err, "coin")
}

func (s *CoinService) DeleteCoin(ctx context.Context, id string) error {
	return notFoundOr(s.repos.DeleteCoin(ctx, id), "coin")
}

// SyncRate refreshes the USD rate from the price feed, keyed by the coin's
// price id or, failing that, its ticker.
func (s *CoinService) SyncRate(ctx context.Context, id string) (models.Coin, error) {
	coin, err := s.repos.GetCoin(ctx, id)
	if err != nil {
		return models.Coin{}, notFoundOr(err, "coin")
	}
	key := coin.PriceID
	if key == "" {
		key = coin.Name
	}
	rate, err := s.rates.USDRate(ctx, key)
	if err != nil {
		return models.Coin{}, errors.Wrapf(err, "price feed for %s", key)
	}
	updated, err := s.repos.UpdateRate(ctx, id, rate)
	return updated, notFoundOr(err, "coin")
}
