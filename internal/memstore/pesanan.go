package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ariefcatur/djikoe/internal/pesanan"
)

type Pesanan struct {
	mu   sync.RWMutex
	byID map[string]pesanan.Pesanan
}

func NewPesanan() *Pesanan {
	return &Pesanan{byID: map[string]pesanan.Pesanan{}}
}

func (s *Pesanan) Create(_ context.Context, p pesanan.Pesanan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[p.ID] = p
	return nil
}

func (s *Pesanan) Get(_ context.Context, id string) (pesanan.Pesanan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return pesanan.Pesanan{}, pesanan.ErrNotFound
	}
	return p, nil
}

func (s *Pesanan) List(_ context.Context, f pesanan.Filter) ([]pesanan.Pesanan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]pesanan.Pesanan, 0, len(s.byID))
	for _, p := range s.byID {
		if f.UserID != "" && p.UserID != f.UserID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Pesanan) UpdateStatus(_ context.Context, id string, st pesanan.Status, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return pesanan.ErrNotFound
	}
	p.Status = st
	p.UpdatedAt = &at
	s.byID[id] = p
	return nil
}

func (s *Pesanan) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return pesanan.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}
