package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ariefcatur/djikoe/internal/auth"
)

var ErrClosed = errors.New("subscription closed")

type IdentitySource interface {
	Watch(ctx context.Context, token string) (<-chan *auth.Identity, error)
}

// Hub: satu-satunya pemilik state sesi di proses. Satu feed per token,
// jalan saat subscriber pertama datang, berhenti saat subscriber terakhir Close.
type Hub struct {
	src      IdentitySource
	resolver *Resolver
	wait     time.Duration
	log      *slog.Logger

	mu    sync.Mutex
	feeds map[string]*feed
}

type feed struct {
	token   string
	cancel  context.CancelFunc
	subs    map[*Subscription]struct{}
	state   State
	version uint64
}

func NewHub(src IdentitySource, r *Resolver, wait time.Duration, log *slog.Logger) *Hub {
	return &Hub{
		src:      src,
		resolver: r,
		wait:     wait,
		log:      log,
		feeds:    map[string]*feed{},
	}
}

// Subscription tidak aman dipakai Next dari banyak goroutine sekaligus.
type Subscription struct {
	hub         *Hub
	f           *feed
	notify      chan struct{}
	seen        uint64
	sentLoading bool
	closed      bool // dijaga hub.mu
	once        sync.Once
}

func (h *Hub) Subscribe(token string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, ok := h.feeds[token]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		f = &feed{
			token:  token,
			cancel: cancel,
			subs:   map[*Subscription]struct{}{},
			state:  Loading{},
		}
		h.feeds[token] = f
		go h.run(ctx, f)
	}

	s := &Subscription{hub: h, f: f, notify: make(chan struct{}, 1)}
	f.subs[s] = struct{}{}
	if f.version > 0 {
		s.notify <- struct{}{}
	}
	return s
}

// Active = jumlah feed yang sedang jalan.
func (h *Hub) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.feeds)
}

func (h *Hub) run(ctx context.Context, f *feed) {
	defer func() {
		h.mu.Lock()
		if h.feeds[f.token] == f {
			delete(h.feeds, f.token)
		}
		h.mu.Unlock()
	}()

	ids, err := h.src.Watch(ctx, f.token)
	if err != nil {
		if ctx.Err() == nil {
			h.log.Error("identity stream failed", "operation", "hub_watch", "outcome", "denied", "error", err)
			h.publish(f, Unauthenticated{Reason: ReasonIdentityError})
		}
		return
	}
	for st := range h.resolver.Watch(ctx, ids) {
		if _, loading := st.(Loading); loading {
			continue
		}
		h.publish(f, st)
	}
}

func (h *Hub) publish(f *feed, st State) {
	h.mu.Lock()
	defer h.mu.Unlock()
	f.state = st
	f.version++
	for s := range f.subs {
		select {
		case s.notify <- struct{}{}:
		default:
		}
	}
}

// Next: Loading selalu yang pertama, setelah itu state terbaru (latest wins).
func (s *Subscription) Next(ctx context.Context) (State, error) {
	if !s.sentLoading {
		s.sentLoading = true
		return Loading{}, nil
	}
	for {
		s.hub.mu.Lock()
		if s.closed {
			s.hub.mu.Unlock()
			return nil, ErrClosed
		}
		if s.f.version > s.seen {
			s.seen = s.f.version
			st := s.f.state
			s.hub.mu.Unlock()
			return st, nil
		}
		s.hub.mu.Unlock()

		select {
		case <-s.notify:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		h := s.hub
		h.mu.Lock()
		s.closed = true
		delete(s.f.subs, s)
		if len(s.f.subs) == 0 {
			s.f.cancel()
			if h.feeds[s.f.token] == s.f {
				delete(h.feeds, s.f.token)
			}
		}
		h.mu.Unlock()

		select {
		case s.notify <- struct{}{}:
		default:
		}
	})
}

// Current menunggu sampai batas wait untuk state yang sudah resolve.
// Lewat dari itu hasilnya Loading.
func (h *Hub) Current(ctx context.Context, token string) State {
	if token == "" {
		return Unauthenticated{Reason: ReasonSignedOut}
	}
	sub := h.Subscribe(token)
	defer sub.Close()

	ctx, cancel := context.WithTimeout(ctx, h.wait)
	defer cancel()
	for {
		st, err := sub.Next(ctx)
		if err != nil {
			return Loading{}
		}
		if _, loading := st.(Loading); loading {
			continue
		}
		return st
	}
}
