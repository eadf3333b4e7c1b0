package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"imagescout/internal/model"
	"imagescout/internal/scout"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "imagescout:source:"

// Store is a Redis-backed per-source result cache. Every operation is
// best-effort: a Redis error is logged and reported as a miss, so a broken
// cache degrades to live fetching instead of failing the run.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{rdb: rdb, ttl: ttl}
}

func resultKey(platform, query string, max int) string {
	return fmt.Sprintf("%s%s:q:%s:n:%d", keyPrefix, platform, query, max)
}

// Get returns the cached records for a platform/query/cap triple, and
// whether the lookup hit.
func (s *Store) Get(ctx context.Context, platform, query string, max int) ([]model.ImageRecord, bool) {
	b, err := s.rdb.Get(ctx, resultKey(platform, query, max)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("cache: lookup failed", "platform", platform, "err", err)
		return nil, false
	}
	var records []model.ImageRecord
	if err := json.Unmarshal(b, &records); err != nil {
		slog.Warn("cache: stale entry dropped", "platform", platform, "err", err)
		return nil, false
	}
	return records, true
}

// Put stores the records under the platform/query/cap key with the
// configured TTL.
func (s *Store) Put(ctx context.Context, platform, query string, max int, records []model.ImageRecord) {
	b, err := json.Marshal(records)
	if err != nil {
		slog.Warn("cache: encode failed", "platform", platform, "err", err)
		return
	}
	if err := s.rdb.Set(ctx, resultKey(platform, query, max), b, s.ttl).Err(); err != nil {
		slog.Warn("cache: store failed", "platform", platform, "err", err)
	}
}

// Clear removes every cached result and returns how many keys were dropped.
func (s *Store) Clear(ctx context.Context) (int, error) {
	var cleared int
	iter := s.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return cleared, err
		}
		cleared++
	}
	if err := iter.Err(); err != nil {
		return cleared, err
	}
	return cleared, nil
}

// Wrap decorates a source with the cache: a hit skips the live fetch, a
// miss fetches and back-fills. Empty fetch results are not cached, so a
// transient source outage does not pin an empty result for the TTL.
func (s *Store) Wrap(src scout.Searcher) scout.Searcher {
	return &cachedSource{src: src, store: s}
}

type cachedSource struct {
	src   scout.Searcher
	store *Store
}

func (c *cachedSource) Platform() string { return c.src.Platform() }

func (c *cachedSource) Search(ctx context.Context, query string, max int) []model.ImageRecord {
	if records, ok := c.store.Get(ctx, c.src.Platform(), query, max); ok {
		slog.Info("cache: hit", "platform", c.src.Platform(), "count", len(records))
		return records
	}
	records := c.src.Search(ctx, query, max)
	if len(records) > 0 {
		c.store.Put(ctx, c.src.Platform(), query, max, records)
	}
	return records
}
