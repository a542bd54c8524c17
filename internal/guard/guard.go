package guard

import (
	"errors"

	"github.com/ariefcatur/djikoe/internal/profile"
	"github.com/ariefcatur/djikoe/internal/session"
)

type Decision int

const (
	Wait Decision = iota
	RedirectLogin
	RedirectHome
	Allow
)

func (d Decision) String() string {
	switch d {
	case Wait:
		return "wait"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	case Allow:
		return "allow"
	}
	return "unknown"
}

var ErrForbidden = errors.New("akses ditolak")

// Decide: urutan loading -> unauthenticated -> role salah -> allow,
// sama untuk semua halaman.
func Decide(st session.State, required profile.Role) Decision {
	switch s := st.(type) {
	case session.Loading:
		return Wait
	case session.Authenticated:
		if s.Profile.Role != required {
			return RedirectHome
		}
		return Allow
	default:
		// Unauthenticated, nil, atau tipe asing
		return RedirectLogin
	}
}

// CanAccess dipakai di route guard dan sebelum setiap aksi yang mengubah data.
func CanAccess(st session.State, required profile.Role) bool {
	return Decide(st, required) == Allow
}

// Check versi error dari CanAccess untuk service layer.
func Check(st session.State, required profile.Role) error {
	if !CanAccess(st, required) {
		return ErrForbidden
	}
	return nil
}
