package repository

import (
	"context"

	"exchange_back/models"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const stakingColumns = `id, coin_id, title, apy, min_amount, lock_days, enabled, created_at, updated_at`

type StakingPostgres struct {
	db *sqlx.DB
}

func NewStakingPostgres(db *sqlx.DB) *StakingPostgres {
	return &StakingPostgres{db: db}
}

func (r *StakingPostgres) ListStakes(ctx context.Context, enabledOnly bool) ([]models.Staking, error) {
	stakes := []models.Staking{}
	query := `SELECT ` + stakingColumns + ` FROM stakes`
	if enabledOnly {
		query += ` WHERE enabled`
	}
	query += ` ORDER BY apy DESC`
	err := r.db.SelectContext(ctx, &stakes, query)
	return stakes, errors.Wrap(err, "list stakes")
}

func (r *StakingPostgres) GetStake(ctx context.Context, id string) (models.Staking, error) {
	var stake models.Staking
	err := r.db.GetContext(ctx, &stake, `SELECT `+stakingColumns+` FROM stakes WHERE id = $1`, id)
	return stake, errors.Wrap(err, "get stake")
}

func (r *StakingPostgres) CreateStake(ctx context.Context, s models.Staking) (models.Staking, error) {
	var created models.Staking
	err := r.db.GetContext(ctx, &created, `
		INSERT INTO stakes (id, coin_id, title, apy, min_amount, lock_days, enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+stakingColumns,
		s.ID, s.CoinID, s.Title, s.APY, s.MinAmount, s.LockDays, s.Enabled)
	if isForeignKeyViolation(err) {
		return created, ErrUnknownCoin
	}
	return created, errors.Wrap(err, "create stake")
}

func (r *StakingPostgres) UpdateStake(ctx context.Context, s models.Staking) (models.Staking, error) {
	var updated models.Staking
	err := r.db.GetContext(ctx, &updated, `
		UPDATE stakes SET coin_id = $2, title = $3, apy = $4, min_amount = $5, lock_days = $6,
			enabled = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+stakingColumns,
		s.ID, s.CoinID, s.Title, s.APY, s.MinAmount, s.LockDays, s.Enabled)
	if isForeignKeyViolation(err) {
		return updated, ErrUnknownCoin
	}
	return updated, errors.Wrap(err, "update stake")
}

func (r *StakingPostgres) DeleteStake(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stakes WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete stake")
	}
	return expectAffected(res)
}
