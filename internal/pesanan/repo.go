package pesanan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const selectCols = `SELECT id, nama_user, user_id, produk, jumlah, total, status, alamat_lengkap,
       nomor_telepon, pengiriman, metode_pembayaran, bukti_pembayaran, tanggal, created_at, updated_at
FROM pesanan`

func scan(row pgx.Row) (Pesanan, error) {
	var p Pesanan
	var status string
	err := row.Scan(&p.ID, &p.NamaUser, &p.UserID, &p.Produk, &p.Jumlah, &p.Total, &status,
		&p.AlamatLengkap, &p.NomorTelepon, &p.Pengiriman, &p.MetodePembayaran, &p.BuktiPembayaran,
		&p.Tanggal, &p.CreatedAt, &p.UpdatedAt)
	p.Status = Status(status)
	return p, err
}

func (r *Repo) Create(ctx context.Context, p Pesanan) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO pesanan(id, nama_user, user_id, produk, jumlah, total, status, alamat_lengkap,
		                    nomor_telepon, pengiriman, metode_pembayaran, bukti_pembayaran, tanggal, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`, p.ID, p.NamaUser, p.UserID, p.Produk, p.Jumlah, p.Total, string(p.Status), p.AlamatLengkap,
		p.NomorTelepon, p.Pengiriman, p.MetodePembayaran, p.BuktiPembayaran, p.Tanggal, p.CreatedAt)
	return err
}

func (r *Repo) Get(ctx context.Context, id string) (Pesanan, error) {
	p, err := scan(r.DB.QueryRow(ctx, selectCols+` WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Pesanan{}, ErrNotFound
	}
	if err != nil {
		return Pesanan{}, fmt.Errorf("pesanan get %s: %w", id, err)
	}
	return p, nil
}

func (r *Repo) List(ctx context.Context, f Filter) ([]Pesanan, error) {
	var (
		where []string
		args  []any
	)
	if f.UserID != "" {
		args = append(args, f.UserID)
		where = append(where, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status=$%d", len(args)))
	}
	q := selectCols
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Pesanan
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateStatus(ctx context.Context, id string, s Status, at time.Time) error {
	tag, err := r.DB.Exec(ctx, `UPDATE pesanan SET status=$2, updated_at=$3 WHERE id=$1`, id, string(s), at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM pesanan WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
