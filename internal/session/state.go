package session

import (
	"context"

	"github.com/ariefcatur/djikoe/internal/auth"
	"github.com/ariefcatur/djikoe/internal/profile"
)

// State adalah union tertutup: Loading | Unauthenticated | Authenticated.
type State interface{ isState() }

type Loading struct{}

type Reason string

const (
	ReasonSignedOut      Reason = "signed_out"
	ReasonProfileMissing Reason = "profile_missing"
	ReasonProfileError   Reason = "profile_error"
	ReasonIdentityError  Reason = "identity_error"
)

type Unauthenticated struct{ Reason Reason }

// Authenticated selalu punya profile; profile yang hilang = Unauthenticated.
type Authenticated struct {
	Identity auth.Identity
	Profile  profile.Profile
}

func (Loading) isState()         {}
func (Unauthenticated) isState() {}
func (Authenticated) isState()   {}

type ctxKey struct{}

func WithState(ctx context.Context, st State) context.Context {
	return context.WithValue(ctx, ctxKey{}, st)
}

// FromContext: tanpa state di context dianggap signed out.
func FromContext(ctx context.Context) State {
	if st, ok := ctx.Value(ctxKey{}).(State); ok && st != nil {
		return st
	}
	return Unauthenticated{Reason: ReasonSignedOut}
}
