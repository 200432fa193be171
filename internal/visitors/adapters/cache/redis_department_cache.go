// Package cache содержит реализацию кэширования справочника с использованием Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"visitlog/internal/visitors/domain/entities"
	"visitlog/internal/visitors/ports/cache"
	"visitlog/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodGet    = "RedisDepartmentCache.Get"
	LogMethodSet    = "RedisDepartmentCache.Set"
	LogMethodDelete = "RedisDepartmentCache.Delete"

	ErrorFailedToGet    = "failed to get department from redis"
	ErrorFailedToSet    = "failed to set department in redis"
	ErrorFailedToDelete = "failed to delete department from redis"
	ErrorFailedToDecode = "failed to decode cached department"

	keyPrefix = "department:"
)

// RedisDepartmentCache реализует интерфейс cache.DepartmentCache с использованием Redis.
type RedisDepartmentCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisDepartmentCache создает кэш подразделений поверх клиента Redis.
func NewRedisDepartmentCache(client redis.Cmdable, ttl time.Duration) *RedisDepartmentCache {
	return &RedisDepartmentCache{client: client, ttl: ttl}
}

var _ cache.DepartmentCache = (*RedisDepartmentCache)(nil)

// Key возвращает ключ Redis для подразделения.
func Key(departmentID string) string {
	return keyPrefix + departmentID
}

// Get получает подразделение из кэша. Возвращает nil, если записи нет.
func (c *RedisDepartmentCache) Get(ctx context.Context, departmentID string) (*entities.Department, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("departmentID", departmentID))

	raw, err := c.client.Get(ctx, Key(departmentID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	var d entities.Department
	if err := json.Unmarshal(raw, &d); err != nil {
		log.Error(ctx, ErrorFailedToDecode, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}

	return &d, nil
}

// Set сохраняет подразделение в кэш на время ttl.
func (c *RedisDepartmentCache) Set(ctx context.Context, d *entities.Department) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.String("departmentID", d.ID))

	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	if err := c.client.Set(ctx, Key(d.ID), raw, c.ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	return nil
}

// Delete удаляет подразделение из кэша.
func (c *RedisDepartmentCache) Delete(ctx context.Context, departmentID string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodDelete), zap.String("departmentID", departmentID))

	if err := c.client.Del(ctx, Key(departmentID)).Err(); err != nil {
		log.Error(ctx, ErrorFailedToDelete, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}

	return nil
}
