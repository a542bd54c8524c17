package catalog

import (
	"context"
	"errors"
	"time"
)

// Product: harga dalam Rupiah bulat.
type Product struct {
	ID        string
	Nama      string
	Harga     int64
	Deskripsi string
	Gambar    string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

var (
	ErrNotFound     = errors.New("produk tidak ditemukan")
	ErrInvalidInput = errors.New("nama dan harga wajib diisi")
)

type Store interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, p Product) error
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
