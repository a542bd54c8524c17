package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ariefcatur/djikoe/internal/guard"
	"github.com/ariefcatur/djikoe/internal/imagehost"
	kafkax "github.com/ariefcatur/djikoe/internal/kafka"
	"github.com/ariefcatur/djikoe/internal/profile"
	"github.com/ariefcatur/djikoe/internal/session"
	"github.com/google/uuid"
)

type Service struct {
	Store    Store
	Images   imagehost.Uploader
	Events   kafkax.Publisher
	Producer string
	Log      *slog.Logger
	Now      func() time.Time
}

// Input form admin. Gambar opsional; kalau ada, menggantikan gambar lama.
type Input struct {
	Nama      string
	Harga     int64
	Deskripsi string
	Gambar    *imagehost.File
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Nama) == "" || in.Harga <= 0 {
		return ErrInvalidInput
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.Store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, st session.State, in Input) (Product, error) {
	if err := guard.Check(st, profile.RoleAdmin); err != nil {
		return Product{}, err
	}
	if err := in.validate(); err != nil {
		return Product{}, err
	}
	url, err := s.upload(ctx, in.Gambar)
	if err != nil {
		return Product{}, err
	}

	p := Product{
		ID:        uuid.NewString(),
		Nama:      strings.TrimSpace(in.Nama),
		Harga:     in.Harga,
		Deskripsi: strings.TrimSpace(in.Deskripsi),
		Gambar:    url,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Store.Create(ctx, p); err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	s.publish(EventProdukDibuat, p)
	s.Log.Info("product created", "operation", "product_create", "outcome", "success", "product_id", p.ID)
	return p, nil
}

func (s *Service) Update(ctx context.Context, st session.State, id string, in Input) (Product, error) {
	if err := guard.Check(st, profile.RoleAdmin); err != nil {
		return Product{}, err
	}
	if err := in.validate(); err != nil {
		return Product{}, err
	}
	p, err := s.Store.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if !in.Gambar.Empty() {
		url, err := s.upload(ctx, in.Gambar)
		if err != nil {
			return Product{}, err
		}
		p.Gambar = url
	}

	now := s.now().UTC()
	p.Nama = strings.TrimSpace(in.Nama)
	p.Harga = in.Harga
	p.Deskripsi = strings.TrimSpace(in.Deskripsi)
	p.UpdatedAt = &now
	// last-write-wins, tanpa cek versi
	if err := s.Store.Update(ctx, p); err != nil {
		return Product{}, fmt.Errorf("update product: %w", err)
	}
	s.publish(EventProdukDiubah, p)
	s.Log.Info("product updated", "operation", "product_update", "outcome", "success", "product_id", p.ID)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, st session.State, id string) error {
	if err := guard.Check(st, profile.RoleAdmin); err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.publish(EventProdukDihapus, Product{ID: id})
	s.Log.Info("product deleted", "operation", "product_delete", "outcome", "success", "product_id", id)
	return nil
}

func (s *Service) upload(ctx context.Context, f *imagehost.File) (string, error) {
	if f.Empty() {
		return "", nil
	}
	url, err := s.Images.Upload(ctx, *f)
	if err != nil {
		return "", fmt.Errorf("upload gambar produk: %w", err)
	}
	return url, nil
}

func (s *Service) publish(eventType string, p Product) {
	kafkax.PublishEvent(s.Events, s.Producer, eventType, p.ID, "",
		ProdukPayload{ID: p.ID, Nama: p.Nama, Harga: p.Harga})
}
