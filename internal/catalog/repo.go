package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, nama, harga, deskripsi, gambar, created_at, updated_at
                                FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Nama, &p.Harga, &p.Deskripsi, &p.Gambar, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `SELECT id, nama, harga, deskripsi, gambar, created_at, updated_at
                             FROM products WHERE id=$1`, id).
		Scan(&p.ID, &p.Nama, &p.Harga, &p.Deskripsi, &p.Gambar, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("product get %s: %w", id, err)
	}
	return p, nil
}

func (r *Repo) Create(ctx context.Context, p Product) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO products(id, nama, harga, deskripsi, gambar, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.Nama, p.Harga, p.Deskripsi, p.Gambar, p.CreatedAt)
	return err
}

func (r *Repo) Update(ctx context.Context, p Product) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE products SET nama=$2, harga=$3, deskripsi=$4, gambar=$5, updated_at=$6
		WHERE id=$1
	`, p.ID, p.Nama, p.Harga, p.Deskripsi, p.Gambar, p.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete tidak menyentuh tabel pesanan; pesanan menyimpan snapshot nama.
func (r *Repo) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}
