package checkout

import (
	"errors"
	"fmt"

	"github.com/ariefcatur/djikoe/internal/guard"
	"github.com/ariefcatur/djikoe/internal/profile"
	"github.com/ariefcatur/djikoe/internal/session"
)

type Phase int

const (
	Browsing Phase = iota
	FormOpen
	Submitting
	Success
	Failed
)

func (p Phase) String() string {
	switch p {
	case Browsing:
		return "browsing"
	case FormOpen:
		return "form_open"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failed:
		return "failed"
	}
	return "unknown"
}

var (
	ErrLoginRequired = errors.New("anda harus login sebagai pengguna terlebih dahulu")
	ErrBadTransition = errors.New("transisi checkout tidak valid")
)

// Flow: Browsing -> FormOpen -> Submitting -> Success | Failed.
type Flow struct {
	phase Phase
	state session.State
}

func NewFlow() *Flow { return &Flow{phase: Browsing} }

func (f *Flow) Phase() Phase { return f.phase }

// Open butuh sesi user. Selain itu pemanggil harus redirect ke login.
func (f *Flow) Open(st session.State) error {
	if f.phase != Browsing {
		return fmt.Errorf("%w: open dari %s", ErrBadTransition, f.phase)
	}
	if !guard.CanAccess(st, profile.RoleUser) {
		return ErrLoginRequired
	}
	f.state = st
	f.phase = FormOpen
	return nil
}

// Begin memvalidasi form secara sinkron. Gagal validasi = tetap FormOpen.
func (f *Flow) Begin(form Form) error {
	if f.phase != FormOpen {
		return fmt.Errorf("%w: submit dari %s", ErrBadTransition, f.phase)
	}
	if err := form.Validate(); err != nil {
		return err
	}
	f.phase = Submitting
	return nil
}

func (f *Flow) finish(err error) {
	if f.phase != Submitting {
		return
	}
	if err != nil {
		f.phase = Failed
		return
	}
	f.phase = Success
}
