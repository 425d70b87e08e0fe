package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/codevaulthq/codevault/internal/application/service"
	"github.com/codevaulthq/codevault/internal/domain/project"
	"github.com/codevaulthq/codevault/pkg/logger"
)

const (
	catalogCacheKey = "codevault:catalog"
	catalogCacheTTL = 5 * time.Minute
)

type redisCatalogCache struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewRedisCatalogCache(rdb *redis.Client, log logger.Logger) service.CatalogCache {
	return &redisCatalogCache{rdb: rdb, logger: log}
}

func (c *redisCatalogCache) Get(ctx context.Context) ([]*project.Project, bool, error) {
	raw, err := c.rdb.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var projects []*project.Project
	if err := json.Unmarshal(raw, &projects); err != nil {
		// a corrupted entry behaves like a miss
		c.logger.Warn("corrupted catalog cache entry, dropping it")
		_ = c.rdb.Del(ctx, catalogCacheKey).Err()
		return nil, false, nil
	}
	return projects, true, nil
}

func (c *redisCatalogCache) Set(ctx context.Context, projects []*project.Project) error {
	raw, err := json.Marshal(projects)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, catalogCacheKey, raw, catalogCacheTTL).Err()
}

func (c *redisCatalogCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, catalogCacheKey).Err()
}
