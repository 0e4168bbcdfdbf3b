package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"golang-bandar-screener/internal/entity"
	"golang-bandar-screener/pkg/logger"
)

type cachingMarketDataRepository struct {
	inner MarketDataRepository
	cache SnapshotCache
	ttl   time.Duration
	log   *logger.Logger
}

// NewCachingMarketDataRepository decorates inner with a per-symbol snapshot cache.
// A nil cache or a non-positive ttl returns inner unchanged.
func NewCachingMarketDataRepository(inner MarketDataRepository, snapshotCache SnapshotCache, ttl time.Duration, log *logger.Logger) MarketDataRepository {
	if snapshotCache == nil || ttl <= 0 {
		return inner
	}
	return &cachingMarketDataRepository{
		inner: inner,
		cache: snapshotCache,
		ttl:   ttl,
		log:   log,
	}
}

func (c *cachingMarketDataRepository) GetSnapshot(ctx context.Context, symbol string) (*entity.MarketSnapshot, error) {
	key := strings.ToUpper(symbol)

	b, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.log.DebugContext(ctx, "Snapshot cache read failed", logger.StringField("symbol", key), logger.ErrorField(err))
	}
	if ok && len(b) > 0 {
		var snapshot entity.MarketSnapshot
		if err := json.Unmarshal(b, &snapshot); err == nil {
			return &snapshot, nil
		}
		// corrupted entry
		if err := c.cache.Delete(ctx, key); err != nil {
			c.log.DebugContext(ctx, "Snapshot cache delete failed", logger.StringField("symbol", key), logger.ErrorField(err))
		}
	}

	snapshot, err := c.inner.GetSnapshot(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(snapshot); err == nil {
		if err := c.cache.Set(ctx, key, b, c.ttl); err != nil {
			c.log.DebugContext(ctx, "Snapshot cache write failed", logger.StringField("symbol", key), logger.ErrorField(err))
		}
	}
	return snapshot, nil
}
