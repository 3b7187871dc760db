// Package cache memoizes serialized read responses in Redis, keyed by the
// logical query shape so distinct query parameters never collide.
package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	pkgredis "github.com/naturals/core/internal/pkg/redis"
	"go.uber.org/zap"
)

// DefaultTTL is the fixed expiry applied to cached payloads.
const DefaultTTL = 3600 * time.Second

const (
	sentinelAll  = "all"
	sentinelNone = "none"
)

// Service is a key/value cache with expiry and prefix invalidation. A nil
// or unreachable backend degrades to pass-through: reads miss, writes and
// invalidations are logged and skipped.
type Service struct {
	rc  *pkgredis.Client
	log *zap.Logger
	ttl time.Duration
}

func New(rc *pkgredis.Client, log *zap.Logger, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{rc: rc, log: log, ttl: ttl}
}

// ListKey builds the cache key for a collection query. Every filter that
// changes the result set is a key segment.
// Shape: <kind>:list:<category|all>:<featured|all>:<search|none>:<sort>:<page|all>:<size|all>
func ListKey(kind, category, featured, search, sort string, page, size int) string {
	if category == "" {
		category = sentinelAll
	}
	if featured == "" {
		featured = sentinelAll
	}
	if search == "" {
		search = sentinelNone
	}
	pagePart := sentinelAll
	sizePart := sentinelAll
	if page > 0 {
		pagePart = strconv.Itoa(page)
	}
	if size > 0 {
		sizePart = strconv.Itoa(size)
	}
	return strings.Join([]string{kind, "list", category, featured, search, sort, pagePart, sizePart}, ":")
}

// ItemKey builds the cache key for a single-item lookup.
func ItemKey(kind, identifier string) string {
	return kind + ":one:" + identifier
}

// Prefix is the invalidation pattern prefix covering every key of a kind,
// collection-level and item-level alike.
func Prefix(kind string) string { return kind + ":" }

// Get returns the cached payload for key, or ok=false on miss or backend error.
func (s *Service) Get(ctx context.Context, key string) (string, bool) {
	if s == nil || s.rc == nil {
		return "", false
	}
	val, err := s.rc.Get(ctx, key)
	if err != nil {
		s.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	if val == "" {
		return "", false
	}
	return val, true
}

// Set stores a serialized payload under key with the fixed TTL. Backend
// errors are logged and swallowed; a missed write only costs a future miss.
func (s *Service) Set(ctx context.Context, key, payload string) {
	if s == nil || s.rc == nil {
		return
	}
	if err := s.rc.Set(ctx, key, payload, s.ttl); err != nil {
		s.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate removes every key under the given prefix. Broad by design:
// any write to an entity clears all cached reads of that kind rather than
// attempting targeted invalidation.
func (s *Service) Invalidate(ctx context.Context, prefix string) {
	if s == nil || s.rc == nil {
		return
	}
	n, err := s.rc.DeleteByPattern(ctx, prefix+"*")
	if err != nil {
		s.log.Warn("cache invalidation failed", zap.String("prefix", prefix), zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Debug("cache invalidated", zap.String("prefix", prefix), zap.Int64("keys", n))
	}
}
