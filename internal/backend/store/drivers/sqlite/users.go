package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/hatchery/hatchd/internal/backend/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, email, password_hash, is_active,
	confirmation_token, confirmation_token_expires, confirmed_token_hash,
	created_at, updated_at`

func (r *usersRepo) getUser(ctx context.Context, where string, arg any) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, arg)

	var (
		u           domain.User
		email       sql.NullString
		confToken   sql.NullString
		confExpires sql.NullTime
		confirmedFP sql.NullString
	)
	err := row.Scan(
		&u.ID,
		&u.Username,
		&email,
		&u.PasswordHash,
		&u.IsActive,
		&confToken,
		&confExpires,
		&confirmedFP,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Email = mapNullString(email)
	u.ConfirmationToken = mapNullStringPtr(confToken)
	u.ConfirmationTokenExpires = mapNullTimePtr(confExpires)
	u.ConfirmedTokenHash = mapNullStringPtr(confirmedFP)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getUser(ctx, `id = ?`, id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getUser(ctx, `username = ?`, username)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getUser(ctx, `email = ?`, email)
}

func (r *usersRepo) GetUserByConfirmationToken(ctx context.Context, token string) (domain.User, error) {
	return r.getUser(ctx, `confirmation_token = ?`, token)
}

func (r *usersRepo) GetUserByConfirmedTokenHash(ctx context.Context, hash string) (domain.User, error) {
	return r.getUser(ctx, `confirmed_token_hash = ?`, hash)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, username, email, password_hash, is_active,
			confirmation_token, confirmation_token_expires,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Username,
		mapStringNull(u.Email),
		u.PasswordHash,
		u.IsActive,
		mapOptionalString(u.ConfirmationToken),
		mapOptionalTime(u.ConfirmationTokenExpires),
		now,
		now,
	)
	return mapConflict(err)
}

func (r *usersRepo) ActivateUser(ctx context.Context, userID, consumedTokenHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			is_active = 1,
			confirmation_token = NULL,
			confirmation_token_expires = NULL,
			confirmed_token_hash = ?,
			updated_at = ?
		WHERE id = ?`,
		consumedTokenHash,
		time.Now().UTC(),
		userID,
	)
	if err != nil {
		return mapConflict(err)
	}
	return requireRow(res)
}
