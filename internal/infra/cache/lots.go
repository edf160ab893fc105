package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// LotCache кэширует список доступных лотов. nil-кэш ничего не хранит
type LotCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewLotCache создает кэш лотов
func NewLotCache(client redis.Cmdable, ttl time.Duration) *LotCache {
	return &LotCache{client: client, ttl: ttl}
}

type cachedLot struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Address           string          `json:"address"`
	Latitude          float64         `json:"latitude"`
	Longitude         float64         `json:"longitude"`
	TotalUnits        int             `json:"totalUnits"`
	AvailableUnits    int             `json:"availableUnits"`
	BaseHourlyRate    decimal.Decimal `json:"baseHourlyRate"`
	MetroStationName  string          `json:"metroStationName"`
	DistanceFromMetro float64         `json:"distanceFromMetro"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// GetAvailable возвращает закэшированный список доступных лотов
func (c *LotCache) GetAvailable(ctx context.Context) ([]*domain.Lot, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	raw, err := c.client.Get(ctx, availableLotsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: GetAvailable - get: %v", ErrCacheRead, err)
	}

	var items []cachedLot
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("%w: GetAvailable - unmarshal: %v", ErrDecode, err)
	}

	lots := make([]*domain.Lot, 0, len(items))
	for _, it := range items {
		lots = append(lots, &domain.Lot{
			ID:                it.ID,
			Name:              it.Name,
			Address:           it.Address,
			Latitude:          it.Latitude,
			Longitude:         it.Longitude,
			TotalUnits:        it.TotalUnits,
			AvailableUnits:    it.AvailableUnits,
			BaseHourlyRate:    it.BaseHourlyRate,
			MetroStationName:  it.MetroStationName,
			DistanceFromMetro: it.DistanceFromMetro,
			Status:            domain.LotStatus(it.Status),
			CreatedAt:         it.CreatedAt,
			UpdatedAt:         it.UpdatedAt,
		})
	}

	return lots, true, nil
}

// SetAvailable сохраняет список доступных лотов
func (c *LotCache) SetAvailable(ctx context.Context, lots []*domain.Lot) error {
	if c == nil {
		return nil
	}
	items := make([]cachedLot, 0, len(lots))
	for _, l := range lots {
		items = append(items, cachedLot{
			ID:                l.ID,
			Name:              l.Name,
			Address:           l.Address,
			Latitude:          l.Latitude,
			Longitude:         l.Longitude,
			TotalUnits:        l.TotalUnits,
			AvailableUnits:    l.AvailableUnits,
			BaseHourlyRate:    l.BaseHourlyRate,
			MetroStationName:  l.MetroStationName,
			DistanceFromMetro: l.DistanceFromMetro,
			Status:            string(l.Status),
			CreatedAt:         l.CreatedAt,
			UpdatedAt:         l.UpdatedAt,
		})
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: SetAvailable - marshal: %v", ErrCacheWrite, err)
	}

	if err := c.client.Set(ctx, availableLotsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: SetAvailable - set: %v", ErrCacheWrite, err)
	}

	return nil
}

// InvalidateAvailable удаляет список доступных лотов
func (c *LotCache) InvalidateAvailable(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.client.Del(ctx, availableLotsKey).Err(); err != nil {
		return fmt.Errorf("%w: InvalidateAvailable - del: %v", ErrCacheWrite, err)
	}
	return nil
}
