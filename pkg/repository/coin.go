package repository

import (
	"context"

	"exchange_back/models"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const coinColumns = `id, name, title, price_id, rate, network, deposit_address, deposit_instructions, with_min, with_max, coin_visible, created_at, updated_at`

// backfillBalances gives every user without a row for the coin a zero balance.
const backfillBalances = `
	INSERT INTO user_balances (user_id, coin_id)
	SELECT id, $1 FROM users
	ON CONFLICT (user_id, coin_id) DO NOTHING`

type CoinPostgres struct {
	db *sqlx.DB
}

func NewCoinPostgres(db *sqlx.DB) *CoinPostgres {
	return &CoinPostgres{db: db}
}

func (r *CoinPostgres) ListCoins(ctx context.Context, visibleOnly bool) ([]models.Coin, error) {
	coins := []models.Coin{}
	query := `SELECT ` + coinColumns + ` FROM coins`
	if visibleOnly {
		query += ` WHERE coin_visible`
	}
	query += ` ORDER BY name`
	err := r.db.SelectContext(ctx, &coins, query)
	return coins, errors.Wrap(err, "list coins")
}

func (r *CoinPostgres) GetCoin(ctx context.Context, id string) (models.Coin, error) {
	var coin models.Coin
	err := r.db.GetContext(ctx, &coin, `SELECT `+coinColumns+` FROM coins WHERE id = $1`, id)
	return coin, errors.Wrap(err, "get coin")
}

// CreateCoin inserts the coin and fans out a zero balance to every existing user
// in the same transaction.
func (r *CoinPostgres) CreateCoin(ctx context.Context, coin models.Coin) (models.Coin, error) {
	var created models.Coin
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO coins (id, name, title, price_id, rate, network, deposit_address,
				deposit_instructions, with_min, with_max, coin_visible)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING ` + coinColumns
		err := tx.GetContext(ctx, &created, query,
			coin.ID, coin.Name, coin.Title, coin.PriceID, coin.Rate, coin.Network, coin.DepositAddress,
			coin.DepositInstructions, coin.WithMin, coin.WithMax, coin.CoinVisible)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return errors.Wrap(err, "insert coin")
		}

		_, err = tx.ExecContext(ctx, backfillBalances, created.ID)
		return errors.Wrap(err, "fan out balances")
	})
	return created, err
}

// UpdateCoin rewrites the listing; making a coin visible backfills missing balances.
func (r *CoinPostgres) UpdateCoin(ctx context.Context, coin models.Coin) (models.Coin, error) {
	var updated models.Coin
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE coins SET name = $2, title = $3, price_id = $4, rate = $5, network = $6,
				deposit_address = $7, deposit_instructions = $8, with_min = $9, with_max = $10,
				coin_visible = $11, updated_at = now()
			WHERE id = $1
			RETURNING ` + coinColumns
		err := tx.GetContext(ctx, &updated, query,
			coin.ID, coin.Name, coin.Title, coin.PriceID, coin.Rate, coin.Network, coin.DepositAddress,
			coin.DepositInstructions, coin.WithMin, coin.WithMax, coin.CoinVisible)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return errors.Wrap(err, "update coin")
		}
		if !updated.CoinVisible {
			return nil
		}
		_, err = tx.ExecContext(ctx, backfillBalances, updated.ID)
		return errors.Wrap(err, "backfill balances")
	})
	return updated, err
}

func (r *CoinPostgres) UpdateRate(ctx context.Context, id string, rate decimal.Decimal) (models.Coin, error) {
	var coin models.Coin
	err := r.db.GetContext(ctx, &coin, `
		UPDATE coins SET rate = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+coinColumns, id, rate)
	return coin, errors.Wrap(err, "update rate")
}

func (r *CoinPostgres) DeleteCoin(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM coins WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete coin")
	}
	return expectAffected(res)
}
