package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ariefcatur/djikoe/internal/auth"
	"github.com/ariefcatur/djikoe/internal/profile"
)

type ProfileReader interface {
	Get(ctx context.Context, uid string) (profile.Profile, error)
}

type Resolver struct {
	Profiles ProfileReader
	Log      *slog.Logger
}

// Resolve tidak pernah fail open: error apapun saat baca profile = Unauthenticated.
func (r *Resolver) Resolve(ctx context.Context, id *auth.Identity) State {
	if id == nil {
		return Unauthenticated{Reason: ReasonSignedOut}
	}
	p, err := r.Profiles.Get(ctx, id.UID)
	switch {
	case err == nil:
		return Authenticated{Identity: *id, Profile: p}
	case errors.Is(err, profile.ErrNotFound):
		r.Log.Warn("profile missing", "operation", "resolve", "outcome", "denied", "uid", id.UID)
		return Unauthenticated{Reason: ReasonProfileMissing}
	default:
		r.Log.Error("profile read failed", "operation", "resolve", "outcome", "denied", "uid", id.UID, "error", err)
		return Unauthenticated{Reason: ReasonProfileError}
	}
}

// Watch selalu kirim Loading dulu, lalu satu state per identity.
func (r *Resolver) Watch(ctx context.Context, ids <-chan *auth.Identity) <-chan State {
	out := make(chan State, 1)
	out <- Loading{}
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case id, ok := <-ids:
				if !ok {
					return
				}
				st := r.Resolve(ctx, id)
				select {
				case out <- st:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
