package repository

import (
	"context"
	"database/sql"

	"exchange_back/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const userColumns = `id, name, email, password_hash, role, email_verified, kyc_status, kyc_doc_type, kyc_doc_number, kyc_document, wallet_address, created_at, updated_at`

type AuthPostgres struct {
	db *sqlx.DB
}

func NewAuthPostgres(db *sqlx.DB) *AuthPostgres {
	return &AuthPostgres{db: db}
}

// CreateUser inserts the user and a zero balance for every visible coin.
func (r *AuthPostgres) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	var created models.User
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO users (id, name, email, password_hash, role)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING ` + userColumns
		err := tx.GetContext(ctx, &created, query, user.ID, user.Name, user.Email, user.PasswordHash, user.Role)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return errors.Wrap(err, "insert user")
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO user_balances (user_id, coin_id)
			SELECT $1, id FROM coins WHERE coin_visible
			ON CONFLICT (user_id, coin_id) DO NOTHING`, created.ID)
		return errors.Wrap(err, "seed balances")
	})
	return created, err
}

func (r *AuthPostgres) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return user, errors.Wrap(err, "get user by email")
}

func (r *AuthPostgres) GetUserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return user, errors.Wrap(err, "get user by id")
}

func (r *AuthPostgres) SetEmailVerified(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET email_verified = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "verify email")
	}
	return expectAffected(res)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

// expectAffected turns a zero-row update or delete into sql.ErrNoRows.
func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
