// Package cache хранит горячие ответы (публичные профили, sitemap) с TTL
// и инвалидацией по префиксу.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/indievia/indievia-backend/internal/logger"
	"github.com/indievia/indievia-backend/internal/metrics"
)

// Store низкоуровневое хранилище байтовых значений.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	InvalidateByPrefix(ctx context.Context, prefix string) error
	Close() error
}

// Cache оборачивает Store: дедуплицирует параллельные загрузки одного ключа
// и пишет метрики попаданий.
type Cache struct {
	store Store
	group singleflight.Group
	log   *logrus.Entry
}

// New создаёт кэш поверх store.
func New(store Store) *Cache {
	return &Cache{store: store, log: logger.WithComponent("cache")}
}

// Store возвращает нижележащее хранилище.
func (c *Cache) Store() Store {
	return c.store
}

// GetBytes читает значение без загрузки.
func (c *Cache) GetBytes(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache get failed")
		return nil, false
	}
	return data, ok
}

// SetBytes сохраняет значение. Ошибки хранилища только логируются.
func (c *Cache) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.store.Set(ctx, key, value, ttl); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache set failed")
	}
}

// Delete удаляет ключ.
func (c *Cache) Delete(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache delete failed")
	}
}

// InvalidateByPrefix удаляет все ключи с префиксом.
func (c *Cache) InvalidateByPrefix(ctx context.Context, prefix string) {
	if err := c.store.InvalidateByPrefix(ctx, prefix); err != nil {
		c.log.WithError(err).WithField("prefix", prefix).Warn("cache invalidate failed")
	}
}

// GetOrSetBytes возвращает значение из кэша или вычисляет его через load.
// Параллельные вызовы с одним ключом выполняют load один раз.
func (c *Cache) GetOrSetBytes(ctx context.Context, key string, ttl time.Duration, load func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	ns := namespace(key)
	if data, ok := c.GetBytes(ctx, key); ok {
		metrics.RecordCacheHit(ns)
		return data, nil
	}
	metrics.RecordCacheMiss(ns)

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if data, ok := c.GetBytes(ctx, key); ok {
			return data, nil
		}
		data, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.SetBytes(ctx, key, data, ttl)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// GetOrSet типизированная версия GetOrSetBytes с JSON-сериализацией.
func GetOrSet[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	data, err := c.GetOrSetBytes(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("cache: encode %s: %w", key, err)
		}
		return encoded, nil
	})
	if err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		c.Delete(ctx, key)
		return zero, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return out, nil
}

func namespace(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
