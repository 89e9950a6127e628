package repository

import (
	"context"

	"exchange_back/models"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const copyTraderColumns = `id, name, avatar_url, win_rate, profit_share, followers, min_copy_amount, description, enabled, created_at, updated_at`

type CopyTraderPostgres struct {
	db *sqlx.DB
}

func NewCopyTraderPostgres(db *sqlx.DB) *CopyTraderPostgres {
	return &CopyTraderPostgres{db: db}
}

func (r *CopyTraderPostgres) ListCopyTraders(ctx context.Context, enabledOnly bool) ([]models.CopyTrader, error) {
	traders := []models.CopyTrader{}
	query := `SELECT ` + copyTraderColumns + ` FROM copy_traders`
	if enabledOnly {
		query += ` WHERE enabled`
	}
	query += ` ORDER BY win_rate DESC`
	err := r.db.SelectContext(ctx, &traders, query)
	return traders, errors.Wrap(err, "list copy traders")
}

func (r *CopyTraderPostgres) GetCopyTrader(ctx context.Context, id string) (models.CopyTrader, error) {
	var trader models.CopyTrader
	err := r.db.GetContext(ctx, &trader, `SELECT `+copyTraderColumns+` FROM copy_traders WHERE id = $1`, id)
	return trader, errors.Wrap(err, "get copy trader")
}

func (r *CopyTraderPostgres) CreateCopyTrader(ctx context.Context, t models.CopyTrader) (models.CopyTrader, error) {
	var created models.CopyTrader
	err := r.db.GetContext(ctx, &created, `
		INSERT INTO copy_traders (id, name, avatar_url, win_rate, profit_share, followers, min_copy_amount, description, enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+copyTraderColumns,
		t.ID, t.Name, t.AvatarURL, t.WinRate, t.ProfitShare, t.Followers, t.MinCopyAmount, t.Description, t.Enabled)
	return created, errors.Wrap(err, "create copy trader")
}

func (r *CopyTraderPostgres) UpdateCopyTrader(ctx context.Context, t models.CopyTrader) (models.CopyTrader, error) {
	var updated models.CopyTrader
	err := r.db.GetContext(ctx, &updated, `
		UPDATE copy_traders SET name = $2, avatar_url = $3, win_rate = $4, profit_share = $5, followers = $6,
			min_copy_amount = $7, description = $8, enabled = $9, updated_at = now()
		WHERE id = $1
		RETURNING `+copyTraderColumns,
		t.ID, t.Name, t.AvatarURL, t.WinRate, t.ProfitShare, t.Followers, t.MinCopyAmount, t.Description, t.Enabled)
	return updated, errors.Wrap(err, "update copy trader")
}

func (r *CopyTraderPostgres) DeleteCopyTrader(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM copy_traders WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete copy trader")
	}
	return expectAffected(res)
}
