package repository

import (
	"context"

	"exchange_back/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const balanceColumns = `id, user_id, coin_id, available, on_order, staked, updated_at`

type BalancePostgres struct {
	db *sqlx.DB
}

func NewBalancePostgres(db *sqlx.DB) *BalancePostgres {
	return &BalancePostgres{db: db}
}

func (r *BalancePostgres) ListBalances(ctx context.Context, userID string) ([]models.BalanceView, error) {
	balances := []models.BalanceView{}
	err := r.db.SelectContext(ctx, &balances, `
		SELECT b.id, b.user_id, b.coin_id, b.available, b.on_order, b.staked, b.updated_at,
			c.name AS coin_name, c.title AS coin_title, c.rate AS coin_rate
		FROM user_balances b
		JOIN coins c ON c.id = b.coin_id
		WHERE b.user_id = $1 AND c.coin_visible
		ORDER BY c.name`, userID)
	return balances, errors.Wrap(err, "list balances")
}

func (r *BalancePostgres) GetBalance(ctx context.Context, userID, coinID string) (models.Balance, error) {
	var balance models.Balance
	err := r.db.GetContext(ctx, &balance,
		`SELECT `+balanceColumns+` FROM user_balances WHERE user_id = $1 AND coin_id = $2`, userID, coinID)
	return balance, errors.Wrap(err, "get balance")
}

// ExecuteSwap debits the source balance, credits (or creates) the destination
// balance and appends the SWAP_OUT/SWAP_IN ledger pair in one transaction.
// The source row is locked so the availability check holds until commit.
func (r *BalancePostgres) ExecuteSwap(ctx context.Context, swap models.SwapExecution) (models.SwapResult, error) {
	var res models.SwapResult
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var from models.Balance
		err := tx.GetContext(ctx, &from, `
			SELECT `+balanceColumns+` FROM user_balances
			WHERE user_id = $1 AND coin_id = $2
			FOR UPDATE`, swap.UserID, swap.From.ID)
		if err != nil {
			return errors.Wrap(err, "lock source balance")
		}
		if from.Available.LessThan(swap.FromAmount) {
			return ErrInsufficientBalance
		}

		err = tx.GetContext(ctx, &res.FromBalance, `
			UPDATE user_balances SET available = available - $2, updated_at = now()
			WHERE id = $1
			RETURNING `+balanceColumns, from.ID, swap.FromAmount)
		if err != nil {
			return errors.Wrap(err, "debit source balance")
		}

		err = tx.GetContext(ctx, &res.ToBalance, `
			INSERT INTO user_balances (user_id, coin_id, available)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, coin_id)
			DO UPDATE SET available = user_balances.available + EXCLUDED.available, updated_at = now()
			RETURNING `+balanceColumns, swap.UserID, swap.To.ID, swap.ToAmount)
		if err != nil {
			return errors.Wrap(err, "credit target balance")
		}

		title := swap.From.Name + " → " + swap.To.Name
		out := models.Transaction{
			UserID: swap.UserID,
			CoinID: &swap.From.ID,
			Type:   models.TxSwapOut,
			Amount: swap.FromAmount,
			Status: models.TxCompleted,
			Title:  "Swap " + title,
		}
		if _, err := insertTransaction(ctx, tx, out); err != nil {
			return err
		}
		in := models.Transaction{
			UserID: swap.UserID,
			CoinID: &swap.To.ID,
			Type:   models.TxSwapIn,
			Amount: swap.ToAmount,
			Status: models.TxCompleted,
			Title:  "Swap " + title,
		}
		_, err = insertTransaction(ctx, tx, in)
		return err
	})
	return res, err
}

// AdjustBalance applies a signed admin delta to the available amount and
// records it as an ADJUSTMENT ledger row.
func (r *BalancePostgres) AdjustBalance(ctx context.Context, entry models.Transaction) (models.Balance, error) {
	var balance models.Balance
	if entry.CoinID == nil {
		return balance, errors.New("adjustment without coin")
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &balance, `
			INSERT INTO user_balances (user_id, coin_id, available)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, coin_id)
			DO UPDATE SET available = user_balances.available + EXCLUDED.available, updated_at = now()
			RETURNING `+balanceColumns, entry.UserID, *entry.CoinID, entry.Amount)
		if err != nil {
			if isCheckViolation(err) {
				return ErrInsufficientBalance
			}
			return errors.Wrap(err, "adjust balance")
		}
		_, err = insertTransaction(ctx, tx, entry)
		return err
	})
	return balance, err
}

// isCheckViolation reports a failed CHECK constraint, i.e. a balance going negative.
func isCheckViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23514"
}
