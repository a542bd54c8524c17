package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Skema mengikuti koleksi dokumen lama: accounts (kredensial), users (profil),
// products, pesanan. Kolom pesanan.produk menyimpan snapshot nama, bukan FK.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    uid uuid PRIMARY KEY,
    email text NOT NULL,
    password_hash text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS accounts_email_lower_unique
ON accounts (LOWER(email));

CREATE TABLE IF NOT EXISTS users (
    uid uuid PRIMARY KEY,
    name text NOT NULL DEFAULT '',
    email text NOT NULL,
    role text NOT NULL DEFAULT 'user',
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS users_role_idx ON users (role);

CREATE TABLE IF NOT EXISTS products (
    id uuid PRIMARY KEY,
    nama text NOT NULL,
    harga bigint NOT NULL CHECK (harga >= 0),
    deskripsi text NOT NULL DEFAULT '',
    gambar text NOT NULL DEFAULT '',
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz
);

CREATE TABLE IF NOT EXISTS pesanan (
    id uuid PRIMARY KEY,
    nama_user text NOT NULL,
    user_id uuid NOT NULL,
    produk text NOT NULL,
    jumlah int NOT NULL CHECK (jumlah > 0),
    total bigint NOT NULL,
    status text NOT NULL DEFAULT 'Menunggu',
    alamat_lengkap text NOT NULL,
    nomor_telepon text NOT NULL,
    pengiriman text NOT NULL,
    metode_pembayaran text NOT NULL,
    bukti_pembayaran text NOT NULL,
    tanggal text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz
);

CREATE INDEX IF NOT EXISTS pesanan_user_id_idx ON pesanan (user_id);
CREATE INDEX IF NOT EXISTS pesanan_status_idx ON pesanan (status);
`

func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schema)
	return err
}
