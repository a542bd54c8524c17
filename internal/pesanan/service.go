package pesanan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ariefcatur/djikoe/internal/guard"
	kafkax "github.com/ariefcatur/djikoe/internal/kafka"
	"github.com/ariefcatur/djikoe/internal/profile"
	"github.com/ariefcatur/djikoe/internal/session"
	"github.com/google/uuid"
)

type Service struct {
	Store    Store
	Events   kafkax.Publisher
	Producer string
	Log      *slog.Logger
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Place menyimpan pesanan baru (status Menunggu) lalu publish PesananDibuat.
// Cek akses dilakukan oleh pemanggil (checkout).
func (s *Service) Place(ctx context.Context, p Pesanan) (Pesanan, error) {
	now := s.now()
	p.ID = uuid.NewString()
	p.Status = StatusMenunggu
	p.CreatedAt = now.UTC()
	p.UpdatedAt = nil
	if p.Tanggal == "" {
		p.Tanggal = now.Format(TanggalLayout)
	}
	if err := s.Store.Create(ctx, p); err != nil {
		return Pesanan{}, fmt.Errorf("create pesanan: %w", err)
	}

	kafkax.PublishEvent(s.Events, s.Producer, EventPesananDibuat, p.ID, "", PesananDibuatPayload{
		PesananID: p.ID,
		UserID:    p.UserID,
		Produk:    p.Produk,
		Jumlah:    p.Jumlah,
		Total:     p.Total,
		Tanggal:   p.Tanggal,
	})
	return p, nil
}

// ListAll untuk admin. filter "" atau "Semua" = tanpa filter.
func (s *Service) ListAll(ctx context.Context, st session.State, filter string) ([]Pesanan, error) {
	if err := guard.Check(st, profile.RoleAdmin); err != nil {
		return nil, err
	}
	var f Filter
	if filter != "" && filter != FilterSemua {
		status, err := ParseStatus(filter)
		if err != nil {
			return nil, err
		}
		f.Status = status
	}
	return s.Store.List(ctx, f)
}

// ListMine: riwayat milik user yang sedang login saja.
func (s *Service) ListMine(ctx context.Context, st session.State) ([]Pesanan, error) {
	if err := guard.Check(st, profile.RoleUser); err != nil {
		return nil, err
	}
	a := st.(session.Authenticated)
	return s.Store.List(ctx, Filter{UserID: a.Identity.UID})
}

func (s *Service) Get(ctx context.Context, st session.State, id string) (Pesanan, error) {
	if err := guard.Check(st, profile.RoleAdmin); err != nil {
		return Pesanan{}, err
	}
	return s.Store.Get(ctx, id)
}

// UpdateStatus: last-write-wins, field lain tidak berubah.
func (s *Service) UpdateStatus(ctx context.Context, st session.State, id, status string) error {
	if err := guard.Check(st, profile.RoleAdmin); err != nil {
		return err
	}
	next, err := ParseStatus(status)
	if err != nil {
		return err
	}
	if err := s.Store.UpdateStatus(ctx, id, next, s.now().UTC()); err != nil {
		return fmt.Errorf("update status pesanan: %w", err)
	}
	kafkax.PublishEvent(s.Events, s.Producer, EventStatusPesananDiubah, id, "",
		StatusPesananDiubahPayload{PesananID: id, Status: string(next)})
	s.Log.Info("pesanan status updated", "operation", "pesanan_status", "outcome", "success", "pesanan_id", id, "status", next)
	return nil
}

func (s *Service) Delete(ctx context.Context, st session.State, id string) error {
	if err := guard.Check(st, profile.RoleAdmin); err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete pesanan: %w", err)
	}
	kafkax.PublishEvent(s.Events, s.Producer, EventPesananDihapus, id, "", PesananDihapusPayload{PesananID: id})
	s.Log.Info("pesanan deleted", "operation", "pesanan_delete", "outcome", "success", "pesanan_id", id)
	return nil
}
