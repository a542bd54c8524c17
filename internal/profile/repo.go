package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Get(ctx context.Context, uid string) (Profile, error) {
	var p Profile
	var role string
	err := r.DB.QueryRow(ctx, `SELECT uid, name, email, role, created_at FROM users WHERE uid=$1`, uid).
		Scan(&p.UID, &p.Name, &p.Email, &role, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("profile get %s: %w", uid, err)
	}
	p.Role = Role(role)
	return p, nil
}

func (r *Repo) Create(ctx context.Context, p Profile) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO users(uid, name, email, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, p.UID, p.Name, p.Email, string(p.Role), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("profile create: %w", err)
	}
	return nil
}

func (r *Repo) CountByRole(ctx context.Context, role Role) (int, error) {
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role=$1`, string(role)).Scan(&n); err != nil {
		return 0, fmt.Errorf("profile count: %w", err)
	}
	return n, nil
}
