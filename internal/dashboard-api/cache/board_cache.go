package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct{ R *redis.Client }

func New(r *redis.Client) *Cache { return &Cache{R: r} }

// keyBoard espelha a chave que o processor invalida ao recomputar um evento
func keyBoard(sportKey string) string {
	if sportKey == "" {
		sportKey = "all"
	}
	return "opps:board:" + sportKey
}

func (c *Cache) GetBoard(ctx context.Context, sportKey string, dst any) (bool, error) {
	b, err := c.R.Get(ctx, keyBoard(sportKey)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (c *Cache) SetBoard(ctx context.Context, sportKey string, v any, ttl time.Duration) error {
	b, _ := json.Marshal(v)
	return c.R.Set(ctx, keyBoard(sportKey), b, ttl).Err()
}
