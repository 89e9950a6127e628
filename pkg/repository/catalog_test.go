package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"exchange_back/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	planCols    = []string{"id", "name", "min_amount", "max_amount", "roi", "duration_days", "description", "created_at", "updated_at"}
	stakingCols = []string{"id", "coin_id", "title", "apy", "min_amount", "lock_days", "enabled", "created_at", "updated_at"}
	traderCols  = []string{"id", "name", "avatar_url", "win_rate", "profit_share", "followers", "min_copy_amount", "description", "enabled", "created_at", "updated_at"}
)

func TestCreatePlanReturnsStoredRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPlanPostgres(db)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO plans .* RETURNING id, name, min_amount`).
		WithArgs("p1", "Starter", "100", "1000", "12.5", 30, "entry tier").
		WillReturnRows(sqlmock.NewRows(planCols).
			AddRow("p1", "Starter", "100", "1000", "12.5", 30, "entry tier", now, now))

	plan, err := repo.CreatePlan(context.Background(), models.Plan{
		ID: "p1", Name: "Starter", MinAmount: d("100"), MaxAmount: d("1000"), ROI: d("12.5"), DurationDays: 30, Description: "entry tier",
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", plan.ID)
	assert.True(t, plan.MaxAmount.Equal(d("1000")))
	assert.True(t, plan.ROI.Equal(d("12.5")))
	assert.Equal(t, now, plan.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePlanMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPlanPostgres(db)

	mock.ExpectQuery(`UPDATE plans SET .* WHERE id = \$1\s+RETURNING`).
		WithArgs("p1", "Starter", "0", "10", "1", 7, "").
		WillReturnRows(sqlmock.NewRows(planCols))

	_, err := repo.UpdatePlan(context.Background(), models.Plan{
		ID: "p1", Name: "Starter", MinAmount: d("0"), MaxAmount: d("10"), ROI: d("1"), DurationDays: 7,
	})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSignalMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSignalPostgres(db)

	mock.ExpectQuery(`SELECT .* FROM signals WHERE id = \$1`).WithArgs("s1").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetSignal(context.Background(), "s1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStakeUnknownCoin(t *testing.T) {
	db, mock := newMock(t)
	repo := NewStakingPostgres(db)

	mock.ExpectQuery(`INSERT INTO stakes`).WillReturnError(&pq.Error{Code: "23503"})

	_, err := repo.CreateStake(context.Background(), models.Staking{ID: "st1", CoinID: "missing", Title: "Flex", APY: d("5")})
	assert.ErrorIs(t, err, ErrUnknownCoin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStakeUnknownCoin(t *testing.T) {
	db, mock := newMock(t)
	repo := NewStakingPostgres(db)

	mock.ExpectQuery(`UPDATE stakes SET coin_id = \$2`).WillReturnError(&pq.Error{Code: "23503"})

	_, err := repo.UpdateStake(context.Background(), models.Staking{ID: "st1", CoinID: "missing", Title: "Flex", APY: d("5")})
	assert.ErrorIs(t, err, ErrUnknownCoin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListStakesEnabledOnly(t *testing.T) {
	db, mock := newMock(t)
	repo := NewStakingPostgres(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM stakes WHERE enabled ORDER BY apy DESC`).
		WillReturnRows(sqlmock.NewRows(stakingCols).AddRow("st1", "coin-a", "Flex", "5", "10", 0, true, now, now))
	mock.ExpectQuery(`SELECT .* FROM stakes ORDER BY apy DESC`).
		WillReturnRows(sqlmock.NewRows(stakingCols).
			AddRow("st1", "coin-a", "Flex", "5", "10", 0, true, now, now).
			AddRow("st2", "coin-a", "Locked", "9", "100", 90, false, now, now))

	enabled, err := repo.ListStakes(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.True(t, enabled[0].Enabled)

	all, err := repo.ListStakes(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCopyTraderReturnsStoredRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCopyTraderPostgres(db)
	now := time.Now()

	mock.ExpectQuery(`UPDATE copy_traders SET .* RETURNING`).
		WillReturnRows(sqlmock.NewRows(traderCols).
			AddRow("ct1", "Ada", "", "71.5", "20", 340, "50", "", false, now, now))

	trader, err := repo.UpdateCopyTrader(context.Background(), models.CopyTrader{
		ID: "ct1", Name: "Ada", WinRate: d("71.5"), ProfitShare: d("20"), Followers: 340, MinCopyAmount: d("50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", trader.Name)
	assert.Equal(t, 340, trader.Followers)
	assert.True(t, trader.WinRate.Equal(d("71.5")))
	assert.False(t, trader.Enabled)
	assert.NoError(t, mock.ExpectationsWereMet())
}
