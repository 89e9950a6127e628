package repository

import (
	"context"

	"exchange_back/models"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const signalColumns = `id, pair, action, entry_price, target_price, stop_loss, status, note, created_at, updated_at`

type SignalPostgres struct {
	db *sqlx.DB
}

func NewSignalPostgres(db *sqlx.DB) *SignalPostgres {
	return &SignalPostgres{db: db}
}

func (r *SignalPostgres) ListSignals(ctx context.Context) ([]models.Signal, error) {
	signals := []models.Signal{}
	err := r.db.SelectContext(ctx, &signals, `SELECT `+signalColumns+` FROM signals ORDER BY created_at DESC`)
	return signals, errors.Wrap(err, "list signals")
}

func (r *SignalPostgres) GetSignal(ctx context.Context, id string) (models.Signal, error) {
	var signal models.Signal
	err := r.db.GetContext(ctx, &signal, `SELECT `+signalColumns+` FROM signals WHERE id = $1`, id)
	return signal, errors.Wrap(err, "get signal")
}

func (r *SignalPostgres) CreateSignal(ctx context.Context, s models.Signal) (models.Signal, error) {
	var created models.Signal
	err := r.db.GetContext(ctx, &created, `
		INSERT INTO signals (id, pair, action, entry_price, target_price, stop_loss, status, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+signalColumns,
		s.ID, s.Pair, s.Action, s.EntryPrice, s.TargetPrice, s.StopLoss, s.Status, s.Note)
	return created, errors.Wrap(err, "create signal")
}

func (r *SignalPostgres) UpdateSignal(ctx context.Context, s models.Signal) (models.Signal, error) {
	var updated models.Signal
	err := r.db.GetContext(ctx, &updated, `
		UPDATE signals SET pair = $2, action = $3, entry_price = $4, target_price = $5, stop_loss = $6,
			status = $7, note = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+signalColumns,
		s.ID, s.Pair, s.Action, s.EntryPrice, s.TargetPrice, s.StopLoss, s.Status, s.Note)
	return updated, errors.Wrap(err, "update signal")
}

func (r *SignalPostgres) DeleteSignal(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM signals WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete signal")
	}
	return expectAffected(res)
}
