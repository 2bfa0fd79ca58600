package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"orderhub/models"

	"github.com/redis/go-redis/v9"
)

// CartStore is the pluggable persistence behind the cart. The cart is never
// the system of record; losing a key only loses an in-progress browse.
type CartStore interface {
	Load(ctx context.Context, key string) (*models.Cart, error)
	Save(ctx context.Context, key string, cart *models.Cart) error
	Delete(ctx context.Context, key string) error
}

const cartTTL = 72 * time.Hour

type RedisCartStore struct {
	client *redis.Client
}

func NewRedisCartStore(client *redis.Client) *RedisCartStore {
	return &RedisCartStore{client: client}
}

func cartKey(key string) string {
	return "cart:" + key
}

func (s *RedisCartStore) Load(ctx context.Context, key string) (*models.Cart, error) {
	raw, err := s.client.Get(ctx, cartKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return &models.Cart{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		// A corrupt cart key is not worth failing the request over.
		return &models.Cart{}, nil
	}
	return &cart, nil
}

func (s *RedisCartStore) Save(ctx context.Context, key string, cart *models.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cartKey(key), raw, cartTTL).Err()
}

func (s *RedisCartStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, cartKey(key)).Err()
}

// MemoryCartStore backs carts when Redis is unavailable, and tests.
// Concurrent writes to the same key are last-write-wins.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]*models.Cart
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string]*models.Cart)}
}

func (s *MemoryCartStore) Load(ctx context.Context, key string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[key]
	if !ok {
		return &models.Cart{}, nil
	}

	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (s *MemoryCartStore) Save(ctx context.Context, key string, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	s.carts[key] = &copied
	return nil
}

func (s *MemoryCartStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, key)
	return nil
}
