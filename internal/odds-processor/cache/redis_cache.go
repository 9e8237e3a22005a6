package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisCache encapsula a invalidação do board de oportunidades no Redis.
// Quem preenche o board é a leitura (read-through no dashboard-api); o
// processor só derruba a chave quando recomputa um evento.
type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache cria uma instância de cache Redis
func NewRedisCache(c *redis.Client) *RedisCache {
	return &RedisCache{Client: c}
}

// boardKey gera a chave Redis do board de um esporte
func boardKey(sportKey string) string { return "opps:board:" + sportKey }

// InvalidateBoard remove o board cacheado de um esporte, forçando a próxima
// leitura a ir ao Postgres com as oportunidades recém-computadas
func (r *RedisCache) InvalidateBoard(ctx context.Context, sportKey string) error {
	return r.Client.Del(ctx, boardKey(sportKey)).Err()
}
