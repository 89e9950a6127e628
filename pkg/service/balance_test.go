package service

import (
	"context"
	"testing"

	"exchange_back/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustBalance(t *testing.T) {
	users := newFakeUsers(models.User{ID: "user-1", Email: "a@example.com"})
	coins := newFakeCoins(models.Coin{ID: "usdt", Name: "USDT", Rate: dec("1"), CoinVisible: true})
	balances := newFakeBalances()
	balances.set("user-1", "usdt", "5")
	s := NewBalanceService(balances, users, coins)
	ctx := context.Background()

	b, err := s.AdjustBalance(ctx, "user-1", models.AdjustBalanceInput{CoinID: "usdt", Amount: dec("15")})
	require.NoError(t, err)
	assert.True(t, b.Available.Equal(dec("20")))
	require.Len(t, balances.ledger, 1)
	assert.Equal(t, models.TxAdjustment, balances.ledger[0].Type)
	assert.Equal(t, "Balance adjustment USDT", balances.ledger[0].Title)

	_, err = s.AdjustBalance(ctx, "user-1", models.AdjustBalanceInput{CoinID: "usdt", Amount: dec("-30")})
	assertKind(t, err, KindInvalid)
	assert.True(t, balances.available("user-1", "usdt").Equal(dec("20")))

	_, err = s.AdjustBalance(ctx, "ghost", models.AdjustBalanceInput{CoinID: "usdt", Amount: dec("1")})
	assertKind(t, err, KindNotFound)
}
