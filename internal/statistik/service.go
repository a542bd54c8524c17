package statistik

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ariefcatur/djikoe/internal/guard"
	"github.com/ariefcatur/djikoe/internal/pesanan"
	"github.com/ariefcatur/djikoe/internal/profile"
	"github.com/ariefcatur/djikoe/internal/session"
)

type OrderLister interface {
	List(ctx context.Context, f pesanan.Filter) ([]pesanan.Pesanan, error)
}

type ProductCounter interface {
	Count(ctx context.Context) (int, error)
}

type RoleCounter interface {
	CountByRole(ctx context.Context, role profile.Role) (int, error)
}

type Service struct {
	Orders   OrderLister
	Products ProductCounter
	Profiles RoleCounter
	Cache    Cache // nil = tanpa cache
	TTL      time.Duration
	Log      *slog.Logger
	Now      func() time.Time
}

func (s *Service) Get(ctx context.Context, st session.State) (Dashboard, error) {
	if err := guard.Check(st, profile.RoleAdmin); err != nil {
		return Dashboard{}, err
	}

	if s.Cache != nil {
		d, ok, err := s.Cache.Get(ctx)
		if err != nil {
			s.Log.Warn("statistik cache read failed", "operation", "statistik_get", "error", err)
		} else if ok {
			return d, nil
		}
	}

	orders, err := s.Orders.List(ctx, pesanan.Filter{})
	if err != nil {
		return Dashboard{}, fmt.Errorf("statistik pesanan: %w", err)
	}
	totalProduk, err := s.Products.Count(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("statistik produk: %w", err)
	}
	totalUser, err := s.Profiles.CountByRole(ctx, profile.RoleUser)
	if err != nil {
		return Dashboard{}, fmt.Errorf("statistik user: %w", err)
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	d := Compute(orders, totalProduk, totalUser, now)

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, d, s.TTL); err != nil {
			s.Log.Warn("statistik cache write failed", "operation", "statistik_get", "error", err)
		}
	}
	return d, nil
}
