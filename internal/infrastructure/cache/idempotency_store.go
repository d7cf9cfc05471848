package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyPrefix = "idem:"

// pendingMarker valor guardado mientras la primera petición con la clave sigue en curso.
const pendingMarker = `{"pending":true}`

// StoredResponse respuesta registrada para repetirla ante un reintento con la misma clave.
type StoredResponse struct {
	Pending     bool   `json:"pending,omitempty"`
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore reserva claves Idempotency-Key en Redis con vencimiento.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore ttl <= 0 usa 24 horas.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve marca la clave como en curso. Devuelve false si ya existía.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, idempotencyPrefix+key, pendingMarker, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("cache: reserve %s: %w", key, err)
	}
	return ok, nil
}

// Lookup devuelve lo guardado para la clave; nil si no existe.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (*StoredResponse, error) {
	raw, err := s.client.Get(ctx, idempotencyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache: lookup %s: %w", key, err)
	}
	var resp StoredResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return &resp, nil
}

// Complete reemplaza la marca de en curso por la respuesta final.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, resp StoredResponse) error {
	resp.Pending = false
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, idempotencyPrefix+key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("cache: complete %s: %w", key, err)
	}
	return nil
}

// Release libera la clave para que un reintento vuelva a ejecutarse (la petición falló).
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyPrefix+key).Err(); err != nil {
		return fmt.Errorf("cache: release %s: %w", key, err)
	}
	return nil
}
