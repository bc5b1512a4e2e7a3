package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/tillworks/pos-terminal/pkg/logger"
)

// snapshotStore is the slice of pkg/redis.Client the cache needs.
type snapshotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogProductKey(productID string) string
	CatalogSearchKey(term string) string
}

// CachedClient wraps a catalog client with a short-TTL Redis snapshot cache.
// A cache hit returns the same point-in-time stock ceiling the engine already
// treats as advisory, so staleness within the TTL changes nothing semantic.
// Refresh always bypasses the cache.
type CachedClient struct {
	inner Client
	store snapshotStore
	ttl   time.Duration
	logg  *logger.Logger
}

func NewCachedClient(inner Client, store snapshotStore, ttl time.Duration, logg *logger.Logger) *CachedClient {
	return &CachedClient{inner: inner, store: store, ttl: ttl, logg: logg}
}

func (c *CachedClient) Search(ctx context.Context, term string) ([]Product, error) {
	key := c.store.CatalogSearchKey(term)
	if raw, err := c.store.Get(ctx, key); err == nil {
		var cached []Product
		if unmarshalErr := json.Unmarshal([]byte(raw), &cached); unmarshalErr == nil {
			return cached, nil
		}
	} else if !errors.Is(err, goredis.Nil) && c.logg != nil {
		c.logg.Warn(ctx, "catalog cache read failed, falling through")
	}

	products, err := c.inner.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	c.put(ctx, key, products)
	return products, nil
}

func (c *CachedClient) ByBarcode(ctx context.Context, code string) (*Product, error) {
	// Barcode scans go straight through: a scan is the operator's explicit
	// request for the freshest stock figure.
	p, err := c.inner.ByBarcode(ctx, code)
	if err != nil {
		return nil, err
	}
	c.put(ctx, c.store.CatalogProductKey(p.ID.String()), p)
	return p, nil
}

func (c *CachedClient) Product(ctx context.Context, id uuid.UUID) (*Product, error) {
	key := c.store.CatalogProductKey(id.String())
	if raw, err := c.store.Get(ctx, key); err == nil {
		var cached Product
		if unmarshalErr := json.Unmarshal([]byte(raw), &cached); unmarshalErr == nil {
			return &cached, nil
		}
	} else if !errors.Is(err, goredis.Nil) && c.logg != nil {
		c.logg.Warn(ctx, "catalog cache read failed, falling through")
	}

	p, err := c.inner.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	c.put(ctx, key, p)
	return p, nil
}

// Refresh re-fetches a product from the catalog, replacing any cached
// snapshot. Callers use it before retrying a submission the server rejected
// for stale stock.
func (c *CachedClient) Refresh(ctx context.Context, id uuid.UUID) (*Product, error) {
	p, err := c.inner.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	c.put(ctx, c.store.CatalogProductKey(id.String()), p)
	return p, nil
}

func (c *CachedClient) put(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, key, string(raw), c.ttl); err != nil && c.logg != nil {
		c.logg.Warn(ctx, "catalog cache write failed")
	}
}
