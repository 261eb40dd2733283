// Package scancache memoizes scanned source units between watch-mode passes.
package scancache

import (
	"fmt"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/dmarins/paslint/internal/domain"
	"github.com/dmarins/paslint/internal/ports"
)

const (
	defaultMaxEntries = 1024
	defaultTTL        = 10 * time.Minute
)

// Cache wraps a SourceScanner with an expirable LRU keyed by path plus
// modification time, so an unchanged file is scanned once per watch session.
type Cache struct {
	inner ports.SourceScanner
	lru   *lru.LRU[string, domain.SourceUnit]
}

type Option func(*config)

type config struct {
	maxEntries int
	ttl        time.Duration
}

func WithMaxEntries(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

func WithTTL(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.ttl = d
		}
	}
}

func New(inner ports.SourceScanner, opts ...Option) *Cache {
	cfg := config{maxEntries: defaultMaxEntries, ttl: defaultTTL}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Cache{
		inner: inner,
		lru:   lru.NewLRU[string, domain.SourceUnit](cfg.maxEntries, nil, cfg.ttl),
	}
}

var _ ports.SourceScanner = (*Cache)(nil)

func (c *Cache) Scan(path string) (domain.SourceUnit, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.SourceUnit{}, &domain.OpError{
			Op:   "scancache.stat",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	key := fmt.Sprintf("%s|%d|%d", path, info.ModTime().UnixNano(), info.Size())
	if unit, ok := c.lru.Get(key); ok {
		return unit, nil
	}

	unit, err := c.inner.Scan(path)
	if err != nil {
		return domain.SourceUnit{}, err
	}
	c.lru.Add(key, unit)
	return unit, nil
}

// ScanBytes is a passthrough; there is no stable key for ad-hoc buffers.
func (c *Cache) ScanBytes(path string, src []byte) domain.SourceUnit {
	return c.inner.ScanBytes(path, src)
}
