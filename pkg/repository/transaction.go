package repository

import (
	"context"

	"exchange_back/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const transactionColumns = `id, user_id, coin_id, type, amount, status, title, tx_hash, address, created_at, updated_at`

type TransactionPostgres struct {
	db *sqlx.DB
}

func NewTransactionPostgres(db *sqlx.DB) *TransactionPostgres {
	return &TransactionPostgres{db: db}
}

func insertTransaction(ctx context.Context, tx *sqlx.Tx, t models.Transaction) (models.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	var created models.Transaction
	err := tx.GetContext(ctx, &created, `
		INSERT INTO transaction_history (id, user_id, coin_id, type, amount, status, title, tx_hash, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+transactionColumns,
		t.ID, t.UserID, t.CoinID, t.Type, t.Amount, t.Status, t.Title, t.TxHash, t.Address)
	return created, errors.Wrapf(err, "insert %s ledger row", t.Type)
}

func (r *TransactionPostgres) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	txs := []models.Transaction{}
	err := r.db.SelectContext(ctx, &txs, `
		SELECT `+transactionColumns+` FROM transaction_history
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	return txs, errors.Wrap(err, "list transactions")
}

func (r *TransactionPostgres) ListAllTransactions(ctx context.Context, status string) ([]models.Transaction, error) {
	txs := []models.Transaction{}
	query := `SELECT ` + transactionColumns + ` FROM transaction_history`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &txs, query, args...)
	return txs, errors.Wrap(err, "list all transactions")
}

func (r *TransactionPostgres) GetTransaction(ctx context.Context, id string) (models.Transaction, error) {
	var t models.Transaction
	err := r.db.GetContext(ctx, &t, `SELECT `+transactionColumns+` FROM transaction_history WHERE id = $1`, id)
	return t, errors.Wrap(err, "get transaction")
}

// CreateDeposit records a pending deposit claim; balances move on approval.
func (r *TransactionPostgres) CreateDeposit(ctx context.Context, entry models.Transaction) (models.Transaction, error) {
	var created models.Transaction
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error
		created, err = insertTransaction(ctx, tx, entry)
		return err
	})
	return created, err
}

// CreateWithdrawal moves the amount from available to on_order and records a
// pending withdrawal.
func (r *TransactionPostgres) CreateWithdrawal(ctx context.Context, entry models.Transaction) (models.Transaction, error) {
	var created models.Transaction
	if entry.CoinID == nil {
		return created, errors.New("withdrawal without coin")
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE user_balances
			SET available = available - $3, on_order = on_order + $3, updated_at = now()
			WHERE user_id = $1 AND coin_id = $2 AND available >= $3`,
			entry.UserID, *entry.CoinID, entry.Amount)
		if err != nil {
			return errors.Wrap(err, "reserve withdrawal")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrInsufficientBalance
		}
		created, err = insertTransaction(ctx, tx, entry)
		return err
	})
	return created, err
}

// Settle moves a pending DEPOSIT or WITHDRAW row to COMPLETED or REJECTED and
// applies the matching balance movement.
func (r *TransactionPostgres) Settle(ctx context.Context, id, status string) (models.Transaction, error) {
	var settled models.Transaction
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var t models.Transaction
		err := tx.GetContext(ctx, &t, `
			SELECT `+transactionColumns+` FROM transaction_history
			WHERE id = $1
			FOR UPDATE`, id)
		if err != nil {
			return errors.Wrap(err, "lock transaction")
		}
		if t.Status != models.TxPending || t.CoinID == nil {
			return ErrNotPending
		}

		var movement string
		switch {
		case t.Type == models.TxDeposit && status == models.TxCompleted:
			movement = `available = available + $3`
		case t.Type == models.TxWithdraw && status == models.TxCompleted:
			movement = `on_order = on_order - $3`
		case t.Type == models.TxWithdraw && status == models.TxRejected:
			movement = `on_order = on_order - $3, available = available + $3`
		case t.Type == models.TxDeposit && status == models.TxRejected:
		default:
			return ErrNotPending
		}

		if movement != "" {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO user_balances (user_id, coin_id) VALUES ($1, $2)
				ON CONFLICT (user_id, coin_id) DO NOTHING`, t.UserID, *t.CoinID)
			if err != nil {
				return errors.Wrap(err, "ensure balance")
			}
			_, err = tx.ExecContext(ctx, `
				UPDATE user_balances SET `+movement+`, updated_at = now()
				WHERE user_id = $1 AND coin_id = $2`, t.UserID, *t.CoinID, t.Amount)
			if err != nil {
				return errors.Wrap(err, "apply settlement")
			}
		}

		err = tx.GetContext(ctx, &settled, `
			UPDATE transaction_history SET status = $2, updated_at = now()
			WHERE id = $1
			RETURNING `+transactionColumns, id, status)
		return errors.Wrap(err, "update transaction status")
	})
	return settled, err
}
