package cache

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pilotdata/project/internal/config"
	"github.com/pilotdata/project/internal/modules/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// New returns a client for the configured redis, nil when no address is set.
func New(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
}

// ProjectCache keeps projects by id and by code. Every failure is logged
// and reported as a miss; a nil client disables the cache.
type ProjectCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewProjectCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *ProjectCache {
	return &ProjectCache{rdb: rdb, ttl: ttl, log: log.Named("project_cache")}
}

func key(idOrCode string) string { return "project:" + idOrCode }

// tombstone is written in place of a project that just changed. While it
// lives, read-through fills are refused so a read that began before the
// change cannot put the old row back.
var tombstone = []byte("-")

const invalidationHold = 5 * time.Second

// decode turns a cache entry into a project; tombstones and corrupt entries
// are misses.
func decode(raw []byte) (*model.Project, error) {
	if bytes.Equal(raw, tombstone) {
		return nil, nil
	}
	var p model.Project
	if err := sonic.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *ProjectCache) Enabled() bool { return c != nil && c.rdb != nil }

// Get looks a project up by its id or code.
func (c *ProjectCache) Get(ctx context.Context, idOrCode string) (*model.Project, bool) {
	if !c.Enabled() {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key(idOrCode)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache get failed", zap.String("key", idOrCode), zap.Error(err))
		}
		return nil, false
	}
	p, err := decode(raw)
	if err != nil {
		c.log.Warn("cache entry is corrupt", zap.String("key", idOrCode), zap.Error(err))
		return nil, false
	}
	return p, p != nil
}

// Set stores a project just written by this service, replacing whatever
// the keys hold.
func (c *ProjectCache) Set(ctx context.Context, p *model.Project) {
	c.store(ctx, p, false)
}

// Fill stores a project read from the database. Keys already holding an
// entry or a tombstone are left alone.
func (c *ProjectCache) Fill(ctx context.Context, p *model.Project) {
	c.store(ctx, p, true)
}

func (c *ProjectCache) store(ctx context.Context, p *model.Project, ifAbsent bool) {
	if !c.Enabled() || p == nil {
		return
	}
	raw, err := sonic.Marshal(p)
	if err != nil {
		c.log.Warn("cache encode failed", zap.String("project_id", p.ID.String()), zap.Error(err))
		return
	}
	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range []string{key(p.ID.String()), key(p.Code)} {
			if ifAbsent {
				pipe.SetNX(ctx, k, raw, c.ttl)
			} else {
				pipe.Set(ctx, k, raw, c.ttl)
			}
		}
		return nil
	})
	if err != nil {
		c.log.Warn("cache set failed", zap.String("project_id", p.ID.String()), zap.Error(err))
	}
}

// Invalidate replaces both keys of p with tombstones.
func (c *ProjectCache) Invalidate(ctx context.Context, p *model.Project) {
	if !c.Enabled() || p == nil {
		return
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key(p.ID.String()), tombstone, invalidationHold)
		pipe.Set(ctx, key(p.Code), tombstone, invalidationHold)
		return nil
	})
	if err != nil {
		c.log.Warn("cache invalidate failed", zap.String("project_id", p.ID.String()), zap.Error(err))
	}
}
