package memstore

import (
	"context"
	"sync"

	"github.com/ariefcatur/djikoe/internal/profile"
)

type Profiles struct {
	mu   sync.RWMutex
	byID map[string]profile.Profile
}

func NewProfiles() *Profiles {
	return &Profiles{byID: map[string]profile.Profile{}}
}

func (s *Profiles) Get(_ context.Context, uid string) (profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[uid]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

func (s *Profiles) Create(_ context.Context, p profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[p.UID] = p
	return nil
}

func (s *Profiles) CountByRole(_ context.Context, role profile.Role) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, p := range s.byID {
		if p.Role == role {
			n++
		}
	}
	return n, nil
}

// Delete hanya untuk simulasi profile hilang.
func (s *Profiles) Delete(uid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, uid)
}
