package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/logger"
)

// DefaultPrefix namespaces every key written by the dashboard.
const DefaultPrefix = "gfsi"

// RenderCache stores encoded chart bytes keyed by dataset version and
// selection. Failures are logged and reported as misses.
type RenderCache struct {
	client *Client
	prefix string
	ttl    time.Duration
	log    *logger.Logger
}

// NewRenderCache creates a render cache on top of client.
func NewRenderCache(client *Client, prefix string, ttl time.Duration, log *logger.Logger) *RenderCache {
	if client == nil {
		client = Disabled()
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RenderCache{client: client, prefix: prefix, ttl: ttl, log: log}
}

// ChartKey identifies one rendered image.
type ChartKey struct {
	Version string
	Mode    string
	Country string
	Format  string
	Width   float64
	Height  float64
}

func (k ChartKey) String() string {
	return fmt.Sprintf("chart:%s:%s:%s:%s:%gx%g", k.Version, k.Mode, k.Country, k.Format, k.Width, k.Height)
}

func (c *RenderCache) fullKey(key fmt.Stringer) string {
	return c.prefix + ":" + key.String()
}

// Get returns the cached bytes for key, if present.
func (c *RenderCache) Get(ctx context.Context, key ChartKey) ([]byte, bool) {
	if !c.client.Enabled() {
		return nil, false
	}

	data, err := c.client.rdb.Get(ctx, c.fullKey(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithError(err).WithField("key", key.String()).Warn("render cache get failed")
		}
		return nil, false
	}
	return data, true
}

// Set stores data under key with the configured TTL.
func (c *RenderCache) Set(ctx context.Context, key ChartKey, data []byte) {
	if !c.client.Enabled() {
		return
	}

	if err := c.client.rdb.Set(ctx, c.fullKey(key), data, c.ttl).Err(); err != nil {
		c.log.WithError(err).WithField("key", key.String()).Warn("render cache set failed")
	}
}

// GetOrRender returns cached bytes or calls render and stores its result.
// The bool reports a cache hit.
func (c *RenderCache) GetOrRender(ctx context.Context, key ChartKey, render func() ([]byte, error)) ([]byte, bool, error) {
	if data, ok := c.Get(ctx, key); ok {
		return data, true, nil
	}

	data, err := render()
	if err != nil {
		return nil, false, err
	}
	c.Set(ctx, key, data)
	return data, false, nil
}
