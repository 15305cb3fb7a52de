package question

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultBankKey = "questionbank:v1"
	defaultBankTTL = 12 * time.Hour
)

// Cache provides Redis-backed bank caching so restarts skip the sources.
type Cache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

var _ BankCache = (*Cache)(nil)

func NewCache(client *redis.Client, key string, ttl time.Duration) *Cache {
	if key == "" {
		key = defaultBankKey
	}
	if ttl <= 0 {
		ttl = defaultBankTTL
	}
	return &Cache{client: client, key: key, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context) ([]Question, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var bank []Question
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, err
	}
	return bank, nil
}

func (c *Cache) Set(ctx context.Context, bank []Question) error {
	data, err := json.Marshal(bank)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, data, c.ttl).Err()
}
