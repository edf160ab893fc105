package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// PricingCache хранит рассчитанные цены парковки в хэше на лот. nil-кэш ничего не хранит
type PricingCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewPricingCache создает кэш цен
func NewPricingCache(client redis.Cmdable, ttl time.Duration) *PricingCache {
	return &PricingCache{client: client, ttl: ttl}
}

// GetPrice возвращает цену из поля хэша лота
func (c *PricingCache) GetPrice(ctx context.Context, lotID int64, field string) (decimal.Decimal, bool, error) {
	if c == nil {
		return decimal.Zero, false, nil
	}
	raw, err := c.client.HGet(ctx, pricingKey(lotID), field).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("%w: GetPrice - hget: %v", ErrCacheRead, err)
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("%w: GetPrice - %q: %v", ErrDecode, raw, err)
	}

	return price, true, nil
}

// SetPrice сохраняет цену и продлевает время жизни хэша
func (c *PricingCache) SetPrice(ctx context.Context, lotID int64, field string, price decimal.Decimal) error {
	if c == nil {
		return nil
	}
	key := pricingKey(lotID)

	if err := c.client.HSet(ctx, key, field, price.String()).Err(); err != nil {
		return fmt.Errorf("%w: SetPrice - hset: %v", ErrCacheWrite, err)
	}

	if c.ttl > 0 {
		if err := c.client.Expire(ctx, key, c.ttl).Err(); err != nil {
			return fmt.Errorf("%w: SetPrice - expire: %v", ErrCacheWrite, err)
		}
	}

	return nil
}

// InvalidateLot удаляет все цены лота
func (c *PricingCache) InvalidateLot(ctx context.Context, lotID int64) error {
	if c == nil {
		return nil
	}
	if err := c.client.Del(ctx, pricingKey(lotID)).Err(); err != nil {
		return fmt.Errorf("%w: InvalidateLot - del: %v", ErrCacheWrite, err)
	}
	return nil
}
