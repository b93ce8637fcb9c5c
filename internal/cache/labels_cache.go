package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/cpghub/cpghub-api/pkg/logger"
	"github.com/cpghub/cpghub-api/pkg/metrics"
)

// LabelSource fetches label option values from the database.
type LabelSource interface {
	ListLabels(ctx context.Context, kind string) ([]string, error)
}

// LabelsCacheInterface is what repositories consume.
type LabelsCacheInterface interface {
	Get(ctx context.Context, kind string) ([]string, error)
	Invalidate(kind string)
}

// LabelsCache keeps the per-kind label option lists in memory. Options
// change only when a custom "Other" entry is promoted, so a short TTL plus
// explicit invalidation on write keeps the lists fresh enough.
type LabelsCache struct {
	cache  *gocache.Cache
	source LabelSource
	ttl    time.Duration
	mu     sync.RWMutex
	ready  bool
}

// NewLabelsCache creates a labels cache with the given TTL in seconds.
func NewLabelsCache(source LabelSource, ttlSeconds int) *LabelsCache {
	if ttlSeconds <= 0 {
		ttlSeconds = 600
	}
	ttl := time.Duration(ttlSeconds) * time.Second

	return &LabelsCache{
		cache:  gocache.New(ttl, time.Hour),
		source: source,
		ttl:    ttl,
	}
}

// Initialize warms the cache for the given kinds (synchronous, blocks until
// ready). Should be called during application startup before accepting
// requests.
func (lc *LabelsCache) Initialize(ctx context.Context, kinds ...string) error {
	logger.Info("Initializing labels cache...")
	for _, kind := range kinds {
		if _, err := lc.refresh(ctx, kind); err != nil {
			logger.Error("Failed to initialize labels cache",
				zap.String("kind", kind),
				zap.Error(err))
			return err
		}
	}

	lc.mu.Lock()
	lc.ready = true
	lc.mu.Unlock()

	logger.Info("Labels cache initialized successfully")
	return nil
}

// IsReady returns true if the cache has been successfully initialized
func (lc *LabelsCache) IsReady() bool {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	return lc.ready
}

// Get retrieves the option list for a kind, fetching on cache miss.
func (lc *LabelsCache) Get(ctx context.Context, kind string) ([]string, error) {
	if !lc.IsReady() {
		return nil, fmt.Errorf("labels cache not initialized")
	}

	if data, found := lc.cache.Get(kind); found {
		metrics.CacheHits.WithLabelValues("labels").Inc()
		values, ok := data.([]string)
		if !ok {
			logger.Error("Invalid labels cache data type", zap.String("kind", kind))
			lc.cache.Delete(kind)
			return nil, fmt.Errorf("invalid cache data type")
		}
		return values, nil
	}

	metrics.CacheMisses.WithLabelValues("labels").Inc()
	logger.Debug("Labels cache miss", zap.String("kind", kind))

	return lc.refresh(ctx, kind)
}

// Invalidate drops the cached list for a kind so the next read refetches.
// Called after a custom option is promoted.
func (lc *LabelsCache) Invalidate(kind string) {
	lc.cache.Delete(kind)
}

func (lc *LabelsCache) refresh(ctx context.Context, kind string) ([]string, error) {
	values, err := lc.source.ListLabels(ctx, kind)
	if err != nil {
		logger.Error("Failed to refresh labels cache",
			zap.String("kind", kind),
			zap.Error(err))
		return nil, err
	}

	lc.cache.Set(kind, values, lc.ttl)
	metrics.CacheSize.WithLabelValues("labels").Set(float64(lc.cache.ItemCount()))

	logger.Info("Labels cache refreshed",
		zap.String("kind", kind),
		zap.Int("count", len(values)))

	return values, nil
}
