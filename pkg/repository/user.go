package repository

import (
	"context"

	"exchange_back/models"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type UsersPostgres struct {
	db *sqlx.DB
}

func NewUsersPostgres(db *sqlx.DB) *UsersPostgres {
	return &UsersPostgres{db: db}
}

func (r *UsersPostgres) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := r.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	return users, errors.Wrap(err, "list users")
}

func (r *UsersPostgres) UpdateProfile(ctx context.Context, id, name, walletAddress string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
		UPDATE users SET name = $2, wallet_address = $3, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, id, name, walletAddress)
	return user, errors.Wrap(err, "update profile")
}

func (r *UsersPostgres) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return errors.Wrap(err, "update password")
	}
	return expectAffected(res)
}

func (r *UsersPostgres) SubmitKyc(ctx context.Context, id, docType, docNumber, document string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
		UPDATE users SET kyc_status = 'PENDING', kyc_doc_type = $2, kyc_doc_number = $3, kyc_document = $4,
			updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, id, docType, docNumber, document)
	return user, errors.Wrap(err, "submit kyc")
}

func (r *UsersPostgres) SetKycStatus(ctx context.Context, id, status string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
		UPDATE users SET kyc_status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, id, status)
	return user, errors.Wrap(err, "set kyc status")
}

// SetRole is used at startup to promote the configured admin account.
func (r *UsersPostgres) SetRole(ctx context.Context, email, role string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET role = $2, updated_at = now() WHERE lower(email) = lower($1) AND role <> $2`, email, role)
	if err != nil {
		return errors.Wrap(err, "set role")
	}
	_, err = res.RowsAffected()
	return errors.Wrap(err, "rows affected")
}
