package service

import (
	"context"
	"testing"

	"exchange_back/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const swapUser = "user-1"

func assertKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr), "expected *service.Error, got %v", err)
	assert.Equal(t, kind, svcErr.Kind)
	return svcErr
}

func swapFixture() (*SwapService, *fakeBalances, *fakeNotifier) {
	coins := newFakeCoins(
		models.Coin{ID: "coin-a", Name: "AAA", Rate: dec("2"), WithMin: dec("1"), CoinVisible: true},
		models.Coin{ID: "coin-b", Name: "BBB", Rate: dec("4"), WithMin: dec("1"), CoinVisible: true},
		models.Coin{ID: "coin-h", Name: "HID", Rate: dec("1"), CoinVisible: false},
	)
	balances := newFakeBalances()
	balances.set(swapUser, "coin-a", "10")
	balances.set(swapUser, "coin-b", "0")
	notifier := newFakeNotifier()
	return NewSwapService(coins, balances, notifier, dec("0.001")), balances, notifier
}

func TestExpectedAmount(t *testing.T) {
	got := ExpectedAmount(dec("5"), dec("2"), dec("4"), dec("0.001"))
	assert.True(t, got.Equal(dec("2.4975")), got.String())
}

func TestSwapSucceeds(t *testing.T) {
	s, balances, notifier := swapFixture()

	res, err := s.Swap(context.Background(), swapUser, "alice@example.com", models.SwapInput{
		FromCoinID: "coin-a",
		ToCoinID:   "coin-b",
		FromAmount: decPtr("5"),
		ToAmount:   decPtr("2.4975"),
	})
	require.NoError(t, err)

	assert.True(t, res.FromBalance.Available.Equal(dec("5")))
	assert.True(t, res.ToBalance.Available.Equal(dec("2.4975")))
	assert.True(t, balances.available(swapUser, "coin-a").Equal(dec("5")))
	assert.True(t, balances.available(swapUser, "coin-b").Equal(dec("2.4975")))

	require.Len(t, balances.ledger, 2)
	assert.Equal(t, models.TxSwapOut, balances.ledger[0].Type)
	assert.Equal(t, models.TxSwapIn, balances.ledger[1].Type)

	require.Len(t, notifier.swaps, 1)
	assert.Equal(t, "alice@example.com", notifier.swaps[0].email)
}

func TestSwapToleratesRoundingWithinBound(t *testing.T) {
	s, balances, _ := swapFixture()

	_, err := s.Swap(context.Background(), swapUser, "", models.SwapInput{
		FromCoinID: "coin-a",
		ToCoinID:   "coin-b",
		FromAmount: decPtr("5"),
		ToAmount:   decPtr("2.497500005"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, balances.swaps)
}

func TestSwapRejectedWithoutMutation(t *testing.T) {
	cases := []struct {
		name    string
		input   models.SwapInput
		kind    Kind
		message string
	}{
		{
			name:    "mismatched target amount",
			input:   models.SwapInput{FromCoinID: "coin-a", ToCoinID: "coin-b", FromAmount: decPtr("5"), ToAmount: decPtr("2.50")},
			kind:    KindInvalid,
			message: "incorrect target amount calculation",
		},
		{
			name:    "same coin",
			input:   models.SwapInput{FromCoinID: "coin-a", ToCoinID: "coin-a", FromAmount: decPtr("1"), ToAmount: decPtr("1")},
			kind:    KindInvalid,
			message: "cannot swap a coin for itself",
		},
		{
			name:    "insufficient balance",
			input:   models.SwapInput{FromCoinID: "coin-a", ToCoinID: "coin-b", FromAmount: decPtr("11"), ToAmount: decPtr("5.4945")},
			kind:    KindInvalid,
			message: "insufficient balance",
		},
		{
			name:    "non positive amount",
			input:   models.SwapInput{FromCoinID: "coin-a", ToCoinID: "coin-b", FromAmount: decPtr("-1"), ToAmount: decPtr("1")},
			kind:    KindInvalid,
			message: "amounts must be positive numbers",
		},
		{
			name:    "unknown coin",
			input:   models.SwapInput{FromCoinID: "coin-a", ToCoinID: "coin-x", FromAmount: decPtr("1"), ToAmount: decPtr("1")},
			kind:    KindNotFound,
			message: "coin not found",
		},
		{
			name:    "hidden coin",
			input:   models.SwapInput{FromCoinID: "coin-a", ToCoinID: "coin-h", FromAmount: decPtr("1"), ToAmount: decPtr("1")},
			kind:    KindInvalid,
			message: "coin is not available for swapping",
		},
		{
			name:    "below minimum",
			input:   models.SwapInput{FromCoinID: "coin-a", ToCoinID: "coin-b", FromAmount: decPtr("0.25"), ToAmount: decPtr("0.124875")},
			kind:    KindInvalid,
			message: "minimum swap amount is 0.5 AAA (1 USD)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, balances, notifier := swapFixture()

			// a rejected swap stays rejected when retried
			for i := 0; i < 2; i++ {
				_, err := s.Swap(context.Background(), swapUser, "", tc.input)
				svcErr := assertKind(t, err, tc.kind)
				assert.Equal(t, tc.message, svcErr.Message)
			}

			assert.Zero(t, balances.swaps)
			assert.Empty(t, balances.ledger)
			assert.True(t, balances.available(swapUser, "coin-a").Equal(dec("10")))
			assert.True(t, balances.available(swapUser, "coin-b").IsZero())
			assert.Empty(t, notifier.swaps)
		})
	}
}

func TestSwapMissingFields(t *testing.T) {
	s, _, _ := swapFixture()

	_, err := s.Swap(context.Background(), swapUser, "", models.SwapInput{FromCoinID: "coin-a"})
	svcErr := assertKind(t, err, KindInvalid)
	fields := make([]string, 0, len(svcErr.Details))
	for _, d := range svcErr.Details {
		fields = append(fields, d.Field)
	}
	assert.Equal(t, []string{"toCoinId", "fromAmount", "toAmount"}, fields)
}

func TestSwapWithoutSourceBalanceRow(t *testing.T) {
	s, balances, _ := swapFixture()
	delete(balances.balances, balanceKey{swapUser, "coin-a"})

	_, err := s.Swap(context.Background(), swapUser, "", models.SwapInput{
		FromCoinID: "coin-a", ToCoinID: "coin-b", FromAmount: decPtr("5"), ToAmount: decPtr("2.4975"),
	})
	svcErr := assertKind(t, err, KindInvalid)
	assert.Equal(t, "insufficient balance", svcErr.Message)
}

func TestSwapNotificationFailureDoesNotFailSwap(t *testing.T) {
	s, balances, notifier := swapFixture()
	notifier.swapErr = errors.New("smtp down")

	_, err := s.Swap(context.Background(), swapUser, "", models.SwapInput{
		FromCoinID: "coin-a", ToCoinID: "coin-b", FromAmount: decPtr("5"), ToAmount: decPtr("2.4975"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, balances.swaps)
	assert.True(t, balances.available(swapUser, "coin-b").Equal(dec("2.4975")))
}

func TestSwapDefaultsFee(t *testing.T) {
	s := NewSwapService(newFakeCoins(), newFakeBalances(), newFakeNotifier(), dec("0"))
	assert.True(t, s.feeRate.Equal(DefaultFeeRate))
}
