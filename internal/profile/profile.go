package profile

import (
	"context"
	"errors"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

// Profile = dokumen di koleksi users, key-nya UID dari identity.
type Profile struct {
	UID       string
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
}

var ErrNotFound = errors.New("profile not found")

type Store interface {
	Get(ctx context.Context, uid string) (Profile, error)
	Create(ctx context.Context, p Profile) error
	CountByRole(ctx context.Context, role Role) (int, error)
}
