package statistik

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ariefcatur/djikoe/internal/auth"
	kafkax "github.com/ariefcatur/djikoe/internal/kafka"
	"github.com/ariefcatur/djikoe/internal/pesanan"
	"github.com/ariefcatur/djikoe/internal/profile"
	"github.com/ariefcatur/djikoe/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

// Invalidator dipasang sebagai handler consumer: event domain apapun
// membuat cache dashboard basi.
type Invalidator struct {
	Redis *redis.Client
	Cache Cache
	Name  string // prefix dedup
	Log   *slog.Logger
}

func (i *Invalidator) Handle(ctx context.Context, m kafkago.Message) error {
	// 1) decode envelope
	env, err := kafkax.UnmarshalEnvelope(m.Value)
	if err != nil {
		// pesan rusak tidak akan pernah sukses; commit saja
		i.Log.Warn("skip malformed event", "operation", "statistik_invalidate", "error", err)
		return nil
	}

	if !affectsDashboard(env) {
		return nil
	}

	// 2) dedup via Redis (pakai event_id)
	dkey := fmt.Sprintf(redisx.KeyDedup, i.Name, env.EventID)
	if exists, _ := redisx.Exists(ctx, i.Redis, dkey); exists {
		return nil
	}

	// 3) hapus cache
	if err := i.Cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate statistik: %w", err)
	}
	_ = i.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	i.Log.Info("statistik cache invalidated",
		"operation", "statistik_invalidate", "outcome", "success", "event_type", env.EventType, "event_id", env.EventID)
	return nil
}

// affectsDashboard: perubahan status tidak mengubah angka dashboard,
// begitu juga akun baru selain role user.
func affectsDashboard(env kafkax.Envelope) bool {
	switch env.EventType {
	case pesanan.EventStatusPesananDiubah:
		return false
	case auth.EventAkunDidaftarkan:
		p, err := kafkax.UnwrapPayload[auth.AkunDidaftarkanPayload](env.Payload)
		if err != nil {
			return true
		}
		return profile.Role(p.Role) == profile.RoleUser
	}
	return true
}
