package service

import (
	"context"
	"strings"

	"exchange_back/models"
	"exchange_back/pkg/repository"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultFeeRate is the platform fee taken from every swap.
var DefaultFeeRate = decimal.RequireFromString("0.001")

// swapTolerance bounds the gap between the submitted and the recomputed target amount.
var swapTolerance = decimal.New(1, -8)

type SwapService struct {
	coins    repository.Coins
	balances repository.Balances
	notifier Notifier
	feeRate  decimal.Decimal
}

func NewSwapService(coins repository.Coins, balances repository.Balances, notifier Notifier, feeRate decimal.Decimal) *SwapService {
	if feeRate.IsZero() {
		feeRate = DefaultFeeRate
	}
	return &SwapService{
		coins:    coins,
		balances: balances,
		notifier: notifier,
		feeRate:  feeRate,
	}
}

// ExpectedAmount is the target amount the platform quotes:
// fromAmount * rateFrom * (1 - fee) / rateTo.
func ExpectedAmount(fromAmount, rateFrom, rateTo, feeRate decimal.Decimal) decimal.Decimal {
	return fromAmount.Mul(rateFrom).Mul(decimal.NewFromInt(1).Sub(feeRate)).Div(rateTo)
}

// Swap validates the request in a fixed order and then moves the balances
// atomically. The admin mail afterwards is best effort.
func (s *SwapService) Swap(ctx context.Context, userID, email string, input models.SwapInput) (models.SwapResult, error) {
	exec, err := s.validate(ctx, userID, input)
	if err != nil {
		return models.SwapResult{}, err
	}

	res, err := s.balances.ExecuteSwap(ctx, exec)
	if errors.Is(err, repository.ErrInsufficientBalance) || errors.Is(err, errNoRows) {
		return models.SwapResult{}, invalid("insufficient balance")
	}
	if err != nil {
		return models.SwapResult{}, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"from":    exec.From.Name,
		"to":      exec.To.Name,
		"amount":  exec.FromAmount.String(),
	}).Info("swap completed")

	if err := s.notifier.NotifySwap(ctx, email, exec); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("swap notification failed")
	}
	return res, nil
}

func (s *SwapService) validate(ctx context.Context, userID string, input models.SwapInput) (models.SwapExecution, error) {
	var exec models.SwapExecution

	var missing []models.FieldError
	if strings.TrimSpace(input.FromCoinID) == "" {
		missing = append(missing, models.FieldError{Field: "fromCoinId", Message: "fromCoinId is required"})
	}
	if strings.TrimSpace(input.ToCoinID) == "" {
		missing = append(missing, models.FieldError{Field: "toCoinId", Message: "toCoinId is required"})
	}
	if input.FromAmount == nil {
		missing = append(missing, models.FieldError{Field: "fromAmount", Message: "fromAmount is required"})
	}
	if input.ToAmount == nil {
		missing = append(missing, models.FieldError{Field: "toAmount", Message: "toAmount is required"})
	}
	if len(missing) > 0 {
		return exec, &Error{Kind: KindInvalid, Message: "All fields are required", Details: missing}
	}
	if input.FromCoinID == input.ToCoinID {
		return exec, invalid("cannot swap a coin for itself")
	}

	fromAmount, toAmount := *input.FromAmount, *input.ToAmount
	if !fromAmount.IsPositive() || !toAmount.IsPositive() {
		return exec, invalid("amounts must be positive numbers")
	}

	from, err := s.coins.GetCoin(ctx, input.FromCoinID)
	if err != nil {
		return exec, notFoundOr(err, "coin")
	}
	to, err := s.coins.GetCoin(ctx, input.ToCoinID)
	if err != nil {
		return exec, notFoundOr(err, "coin")
	}
	if !from.CoinVisible || !to.CoinVisible {
		return exec, invalid("coin is not available for swapping")
	}
	if !from.Rate.IsPositive() || !to.Rate.IsPositive() {
		return exec, invalid("coin rate is not set")
	}

	balance, err := s.balances.GetBalance(ctx, userID, from.ID)
	if errors.Is(err, errNoRows) {
		return exec, invalid("insufficient balance")
	}
	if err != nil {
		return exec, err
	}
	if balance.Available.LessThan(fromAmount) {
		return exec, invalid("insufficient balance")
	}

	// with_min is a USD amount and doubles as the swap minimum.
	if fromAmount.Mul(from.Rate).LessThan(from.WithMin) {
		minAmount := from.WithMin.Div(from.Rate).RoundUp(8)
		return exec, invalid("minimum swap amount is %s %s (%s USD)", minAmount.String(), from.Name, from.WithMin.String())
	}

	expected := ExpectedAmount(fromAmount, from.Rate, to.Rate, s.feeRate)
	if toAmount.Sub(expected).Abs().GreaterThan(swapTolerance) {
		return exec, invalid("incorrect target amount calculation")
	}

	return models.SwapExecution{
		UserID:     userID,
		From:       from,
		To:         to,
		FromAmount: fromAmount,
		ToAmount:   toAmount,
	}, nil
}
