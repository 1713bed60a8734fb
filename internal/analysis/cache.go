package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"

	"github.com/FeedbackLens/feedback-lens-backend/logger"
	"github.com/FeedbackLens/feedback-lens-backend/types"
	"github.com/redis/go-redis/v9"
)

// Fingerprint returns the cache key for a piece of feedback text: the hex
// SHA-256 digest of the case-folded, whitespace-trimmed text. Two texts that
// differ only in case or surrounding whitespace share a fingerprint.
func Fingerprint(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// Cache stores computed analyses keyed by text fingerprint. Implementations
// must tolerate concurrent Get/Set; last-writer-wins on duplicate keys is
// acceptable because the value is a pure function of the key's source text.
//
// The cache is best-effort: implementations that can fail (e.g. Redis) degrade
// to "always miss" rather than surfacing errors.
type Cache interface {
	Get(ctx context.Context, fingerprint string) (*types.FeedbackAnalysis, bool)
	Set(ctx context.Context, fingerprint string, analysis *types.FeedbackAnalysis)
	Clear(ctx context.Context) error
}

// MemoryCache is an in-process analysis cache. No expiry and no size bound;
// unbounded growth is an accepted operational risk.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]types.FeedbackAnalysis
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]types.FeedbackAnalysis)}
}

func (c *MemoryCache) Get(_ context.Context, fingerprint string) (*types.FeedbackAnalysis, bool) {
	c.mu.RLock()
	entry, ok := c.entries[fingerprint]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return &entry, true
}

func (c *MemoryCache) Set(_ context.Context, fingerprint string, analysis *types.FeedbackAnalysis) {
	if analysis == nil {
		return
	}
	c.mu.Lock()
	c.entries[fingerprint] = *analysis
	c.mu.Unlock()
}

// Clear drops all entries. Used for test isolation; always succeeds.
func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]types.FeedbackAnalysis)
	c.mu.Unlock()
	return nil
}

// RedisCache is a Redis-backed analysis cache shared across processes.
// Entries are stored as JSON under a key prefix with no expiry. All Redis
// failures degrade to a miss and are logged, never returned to callers.
type RedisCache struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisCache creates a Redis-backed cache using the given client.
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{
		client:    client,
		keyPrefix: "analysis:",
	}
}

func (c *RedisCache) Get(ctx context.Context, fingerprint string) (*types.FeedbackAnalysis, bool) {
	payload, err := c.client.Get(ctx, c.keyPrefix+fingerprint).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.GetLogger().Warnw("Analysis cache read failed, treating as miss",
				"fingerprint", fingerprint, "error", err)
		}
		return nil, false
	}

	var analysis types.FeedbackAnalysis
	if err := json.Unmarshal(payload, &analysis); err != nil {
		logger.GetLogger().Warnw("Analysis cache entry corrupt, treating as miss",
			"fingerprint", fingerprint, "error", err)
		return nil, false
	}
	return &analysis, true
}

func (c *RedisCache) Set(ctx context.Context, fingerprint string, analysis *types.FeedbackAnalysis) {
	if analysis == nil {
		return
	}
	payload, err := json.Marshal(analysis)
	if err != nil {
		logger.GetLogger().Warnw("Failed to encode analysis for cache", "error", err)
		return
	}
	if err := c.client.Set(ctx, c.keyPrefix+fingerprint, payload, 0).Err(); err != nil {
		logger.GetLogger().Warnw("Analysis cache write failed", "fingerprint", fingerprint, "error", err)
	}
}

// Clear removes every cached analysis under the key prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
