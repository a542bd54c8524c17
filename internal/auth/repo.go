package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountRepo struct{ DB *pgxpool.Pool }

func (r *AccountRepo) Create(ctx context.Context, a Account) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO accounts(uid, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, a.UID, a.Email, a.PasswordHash, a.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("account create: %w", err)
	}
	return nil
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (Account, error) {
	var a Account
	err := r.DB.QueryRow(ctx, `
		SELECT uid, email, password_hash, created_at
		FROM accounts WHERE LOWER(email) = LOWER($1)
	`, email).Scan(&a.UID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	if err != nil {
		return Account{}, fmt.Errorf("account get: %w", err)
	}
	return a, nil
}
