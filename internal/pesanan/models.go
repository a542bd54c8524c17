package pesanan

import (
	"context"
	"errors"
	"time"
)

// Pesanan.Produk adalah snapshot nama produk saat checkout, bukan referensi.
type Pesanan struct {
	ID               string
	NamaUser         string
	UserID           string
	Produk           string
	Jumlah           int
	Total            int64
	Status           Status
	AlamatLengkap    string
	NomorTelepon     string
	Pengiriman       string
	MetodePembayaran string
	BuktiPembayaran  string
	Tanggal          string // YYYY-MM-DD
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

const TanggalLayout = "2006-01-02"

var ErrNotFound = errors.New("pesanan tidak ditemukan")

// Filter kosong = semua pesanan.
type Filter struct {
	UserID string
	Status Status
}

type Store interface {
	Create(ctx context.Context, p Pesanan) error
	Get(ctx context.Context, id string) (Pesanan, error)
	List(ctx context.Context, f Filter) ([]Pesanan, error)
	// UpdateStatus hanya mengubah status dan updated_at.
	UpdateStatus(ctx context.Context, id string, s Status, at time.Time) error
	Delete(ctx context.Context, id string) error
}
