package auth

import (
	"context"
	"errors"
	"time"
)

// Identity adalah handle user dari identity provider. Role tidak ada di sini,
// role selalu dibaca dari profile.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

type Account struct {
	UID          string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

var (
	ErrInvalidCredentials = errors.New("email atau password salah")
	ErrEmailTaken         = errors.New("email sudah terdaftar")
	ErrWeakPassword       = errors.New("password minimal 6 karakter")
	ErrMissingFields      = errors.New("data belum lengkap")
	ErrAccountNotFound    = errors.New("account not found")
)

// EventKind dipublish ke channel auth:events:{token}.
type EventKind string

const (
	EventSignedIn  EventKind = "signed_in"
	EventSignedOut EventKind = "signed_out"
)

type AccountStore interface {
	Create(ctx context.Context, a Account) error
	GetByEmail(ctx context.Context, email string) (Account, error)
}

// TokenStore menyimpan token sesi opaque dan menyiarkan perubahan status per token.
type TokenStore interface {
	Save(ctx context.Context, token string, id Identity, ttl time.Duration) error
	Get(ctx context.Context, token string) (*Identity, error) // nil, nil kalau tidak ada
	Delete(ctx context.Context, token string) error
	Publish(ctx context.Context, token string, ev EventKind) error
	// Subscribe aktif sebelum return; channel ditutup saat ctx selesai.
	Subscribe(ctx context.Context, token string) (<-chan EventKind, error)
}
