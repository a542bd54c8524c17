package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ariefcatur/djikoe/internal/auth"
	"github.com/ariefcatur/djikoe/internal/logging"
	"github.com/ariefcatur/djikoe/internal/profile"
)

// fakeSource: satu stream per Watch; test mendorong identity lewat push.
type fakeSource struct {
	mu      sync.Mutex
	watches int
	active  int
	streams []chan *auth.Identity
	started chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{started: make(chan struct{}, 16)}
}

func (f *fakeSource) Watch(ctx context.Context, _ string) (<-chan *auth.Identity, error) {
	ch := make(chan *auth.Identity)
	f.mu.Lock()
	f.watches++
	f.active++
	f.streams = append(f.streams, ch)
	f.mu.Unlock()

	out := make(chan *auth.Identity)
	go func() {
		defer close(out)
		defer func() {
			f.mu.Lock()
			f.active--
			f.mu.Unlock()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case id := <-ch:
				select {
				case out <- id:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	f.started <- struct{}{}
	return out, nil
}

func (f *fakeSource) push(t *testing.T, id *auth.Identity) {
	t.Helper()
	f.mu.Lock()
	ch := f.streams[len(f.streams)-1]
	f.mu.Unlock()
	select {
	case ch <- id:
	case <-time.After(time.Second):
		t.Fatalf("push timed out")
	}
}

func (f *fakeSource) counts() (watches, active int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.watches, f.active
}

func waitStarted(t *testing.T, f *fakeSource) {
	t.Helper()
	select {
	case <-f.started:
	case <-time.After(time.Second):
		t.Fatalf("identity stream not started")
	}
}

func newTestHub(src IdentitySource, wait time.Duration) *Hub {
	p := &fakeProfiles{byUID: map[string]profile.Profile{
		"u-1": {UID: "u-1", Name: "Sari", Role: profile.RoleUser},
	}}
	return NewHub(src, newResolver(p), wait, logging.Discard())
}

func next(t *testing.T, s *Subscription) State {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	st, err := s.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	return st
}

func TestSubscriptionLoadingFirstThenLatest(t *testing.T) {
	src := newFakeSource()
	hub := newTestHub(src, time.Second)

	sub := hub.Subscribe("tok")
	defer sub.Close()
	waitStarted(t, src)

	if _, ok := next(t, sub).(Loading); !ok {
		t.Fatalf("first state must be Loading")
	}
	src.push(t, &auth.Identity{UID: "u-1"})
	if _, ok := next(t, sub).(Authenticated); !ok {
		t.Fatalf("expected Authenticated after sign in")
	}

	// late subscriber tetap dapat Loading dulu, lalu state terbaru
	late := hub.Subscribe("tok")
	defer late.Close()
	if _, ok := next(t, late).(Loading); !ok {
		t.Fatalf("late subscriber must see Loading first")
	}
	if _, ok := next(t, late).(Authenticated); !ok {
		t.Fatalf("late subscriber must see latest state")
	}

	src.push(t, nil)
	if u, ok := next(t, sub).(Unauthenticated); !ok || u.Reason != ReasonSignedOut {
		t.Fatalf("expected signed out state")
	}
}

func TestSubscriptionLatestWins(t *testing.T) {
	src := newFakeSource()
	hub := newTestHub(src, time.Second)

	sub := hub.Subscribe("tok")
	defer sub.Close()
	waitStarted(t, src)
	_ = next(t, sub) // Loading

	src.push(t, &auth.Identity{UID: "u-1"})
	src.push(t, nil)

	// tunggu sampai dua event terproses lalu pastikan yang terbaca adalah yang terakhir
	deadline := time.Now().Add(time.Second)
	for {
		hub.mu.Lock()
		v := sub.f.version
		hub.mu.Unlock()
		if v >= 2 || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if _, ok := next(t, sub).(Unauthenticated); !ok {
		t.Fatalf("expected latest state to win")
	}
}

func TestHubRefcountLifecycle(t *testing.T) {
	src := newFakeSource()
	hub := newTestHub(src, time.Second)

	a := hub.Subscribe("tok")
	waitStarted(t, src)
	b := hub.Subscribe("tok")

	if w, _ := src.counts(); w != 1 {
		t.Fatalf("stream should start once: watches=%d", w)
	}
	if hub.Active() != 1 {
		t.Fatalf("expected one active feed, got %d", hub.Active())
	}

	a.Close()
	if hub.Active() != 1 {
		t.Fatalf("feed stopped while subscriber remains")
	}
	b.Close()
	b.Close() // idempoten
	if hub.Active() != 0 {
		t.Fatalf("feed should stop after last close")
	}

	deadline := time.Now().Add(time.Second)
	for {
		if _, active := src.counts(); active == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("upstream stream not cancelled")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := b.Next(context.Background()); err != nil {
		// Loading pertama selalu dikirim walau sudah ditutup
		t.Fatalf("first Next: %v", err)
	}
	if _, err := b.Next(context.Background()); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}

	c := hub.Subscribe("tok")
	defer c.Close()
	waitStarted(t, src)
	if w, _ := src.counts(); w != 2 {
		t.Fatalf("stream should restart for new subscriber: watches=%d", w)
	}
}

func TestCurrent(t *testing.T) {
	t.Run("empty token", func(t *testing.T) {
		hub := newTestHub(newFakeSource(), 50*time.Millisecond)
		if _, ok := hub.Current(context.Background(), "").(Unauthenticated); !ok {
			t.Fatalf("empty token must be unauthenticated")
		}
	})

	t.Run("resolves within wait", func(t *testing.T) {
		src := newFakeSource()
		hub := newTestHub(src, time.Second)
		go func() {
			<-src.started
			src.mu.Lock()
			ch := src.streams[len(src.streams)-1]
			src.mu.Unlock()
			ch <- &auth.Identity{UID: "u-1"}
		}()
		if _, ok := hub.Current(context.Background(), "tok").(Authenticated); !ok {
			t.Fatalf("expected Authenticated")
		}
		if hub.Active() != 0 {
			t.Fatalf("Current must release its subscription")
		}
	})

	t.Run("times out as loading", func(t *testing.T) {
		hub := newTestHub(newFakeSource(), 30*time.Millisecond)
		if _, ok := hub.Current(context.Background(), "tok").(Loading); !ok {
			t.Fatalf("expected Loading after wait")
		}
	})
}
