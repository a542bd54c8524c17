package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	kafkax "github.com/ariefcatur/djikoe/internal/kafka"
	"github.com/ariefcatur/djikoe/internal/profile"
	"github.com/google/uuid"
)

type Service struct {
	Accounts AccountStore
	Profiles profile.Store
	Tokens   TokenStore
	Events   kafkax.Publisher
	Producer string
	TTL      time.Duration
	Log      *slog.Logger
	Now      func() time.Time
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Role     profile.Role // kosong = user
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

// SignUp membuat akun + profile. Tidak otomatis login.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (Identity, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" || in.Password == "" {
		return Identity{}, ErrMissingFields
	}
	role := in.Role
	if role == "" {
		role = profile.RoleUser
	}
	if !role.Valid() {
		return Identity{}, fmt.Errorf("sign up: unknown role %q", role)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return Identity{}, err
	}

	now := s.now().UTC()
	acc := Account{UID: uuid.NewString(), Email: email, PasswordHash: hash, CreatedAt: now}
	if err := s.Accounts.Create(ctx, acc); err != nil {
		return Identity{}, err
	}

	p := profile.Profile{UID: acc.UID, Name: name, Email: email, Role: role, CreatedAt: now}
	if err := s.Profiles.Create(ctx, p); err != nil {
		// akun tanpa profile tetap aman: sesi akan fail closed (profile_missing)
		s.Log.Error("profile create failed after account create",
			"operation", "sign_up", "outcome", "partial", "uid", acc.UID, "error", err)
		return Identity{}, fmt.Errorf("sign up: %w", err)
	}

	kafkax.PublishEvent(s.Events, s.Producer, EventAkunDidaftarkan, acc.UID, "",
		AkunDidaftarkanPayload{UID: acc.UID, Email: email, Role: string(role)})
	s.Log.Info("account registered", "operation", "sign_up", "outcome", "success", "uid", acc.UID, "role", role)
	return Identity{UID: acc.UID, Email: email}, nil
}

// SignIn mengembalikan token sesi baru.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, Identity, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", Identity{}, ErrMissingFields
	}

	acc, err := s.Accounts.GetByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		return "", Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", Identity{}, fmt.Errorf("sign in: %w", err)
	}
	if err := verifyPassword(acc.PasswordHash, password); err != nil {
		return "", Identity{}, ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return "", Identity{}, err
	}
	id := Identity{UID: acc.UID, Email: acc.Email}
	if err := s.Tokens.Save(ctx, token, id, s.TTL); err != nil {
		return "", Identity{}, fmt.Errorf("sign in: save token: %w", err)
	}
	if err := s.Tokens.Publish(ctx, token, EventSignedIn); err != nil {
		s.Log.Warn("publish signed_in failed", "operation", "sign_in", "error", err)
	}
	return token, id, nil
}

func (s *Service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.Tokens.Delete(ctx, token); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	if err := s.Tokens.Publish(ctx, token, EventSignedOut); err != nil {
		s.Log.Warn("publish signed_out failed", "operation", "sign_out", "error", err)
	}
	return nil
}

// Lookup: nil, nil kalau token tidak dikenal / kadaluarsa.
func (s *Service) Lookup(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, nil
	}
	return s.Tokens.Get(ctx, token)
}

// Watch mengirim identity saat ini lalu satu nilai per event signed_in/signed_out.
// nil berarti signed out. Channel ditutup saat ctx selesai.
func (s *Service) Watch(ctx context.Context, token string) (<-chan *Identity, error) {
	events, err := s.Tokens.Subscribe(ctx, token)
	if err != nil {
		return nil, err
	}

	out := make(chan *Identity)
	go func() {
		defer close(out)
		send := func(id *Identity) bool {
			select {
			case out <- id:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send(s.lookupOrNil(ctx, token)) {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				var id *Identity
				if ev == EventSignedIn {
					id = s.lookupOrNil(ctx, token)
				}
				if !send(id) {
					return
				}
			}
		}
	}()
	return out, nil
}

// lookupOrNil: error baca token diperlakukan sebagai signed out.
func (s *Service) lookupOrNil(ctx context.Context, token string) *Identity {
	id, err := s.Lookup(ctx, token)
	if err != nil {
		if ctx.Err() == nil {
			s.Log.Warn("token lookup failed", "operation", "watch", "error", err)
		}
		return nil
	}
	return id
}
