package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ariefcatur/djikoe/internal/redisx"
	"github.com/redis/go-redis/v9"
)

type RedisTokenStore struct{ RDB *redis.Client }

func (s *RedisTokenStore) Save(ctx context.Context, token string, id Identity, ttl time.Duration) error {
	b, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("token marshal: %w", err)
	}
	return s.RDB.Set(ctx, fmt.Sprintf(redisx.KeyAuthToken, token), b, ttl).Err()
}

func (s *RedisTokenStore) Get(ctx context.Context, token string) (*Identity, error) {
	val, err := s.RDB.Get(ctx, fmt.Sprintf(redisx.KeyAuthToken, token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var id Identity
	if err := json.Unmarshal(val, &id); err != nil {
		return nil, fmt.Errorf("token unmarshal: %w", err)
	}
	return &id, nil
}

func (s *RedisTokenStore) Delete(ctx context.Context, token string) error {
	return s.RDB.Del(ctx, fmt.Sprintf(redisx.KeyAuthToken, token)).Err()
}

func (s *RedisTokenStore) Publish(ctx context.Context, token string, ev EventKind) error {
	return s.RDB.Publish(ctx, fmt.Sprintf(redisx.KeyAuthEvents, token), string(ev)).Err()
}

func (s *RedisTokenStore) Subscribe(ctx context.Context, token string) (<-chan EventKind, error) {
	ps := s.RDB.Subscribe(ctx, fmt.Sprintf(redisx.KeyAuthEvents, token))
	// tunggu konfirmasi subscribe supaya event setelah ini tidak hilang
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe auth events: %w", err)
	}

	out := make(chan EventKind)
	go func() {
		defer close(out)
		defer ps.Close()
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- EventKind(m.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
