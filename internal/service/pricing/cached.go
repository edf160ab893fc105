package pricing

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/shopspring/decimal"
)

// CachedEngine оборачивает Engine кэшем цен парковки.
// Поле кэша включает день недели и час начала, поэтому запрос из другой
// временной корзины никогда не получит чужую цену. Отпечаток настроек в поле
// отсекает цены, посчитанные до смены множителей, скидок или часового пояса
type CachedEngine struct {
	*Engine
	cache       PriceCache
	fingerprint string
	logger      Logger
}

// NewCachedEngine создает движок с кэшем. cache может быть nil
func NewCachedEngine(engine *Engine, cache PriceCache, logger Logger) *CachedEngine {
	return &CachedEngine{
		Engine:      engine,
		cache:       cache,
		fingerprint: engine.cfg.Fingerprint(),
		logger:      logger,
	}
}

// PriceLot считает стоимость бронирования лота, используя кэш.
// Ошибки кэша не мешают расчету
func (e *CachedEngine) PriceLot(ctx context.Context, lot *domain.Lot, window domain.Window, class domain.BookingClass) decimal.Decimal {
	if e.cache == nil {
		return e.PriceParking(lot.BaseHourlyRate, window, class)
	}

	field := e.CacheField(lot.BaseHourlyRate, window, class)

	price, found, err := e.cache.GetPrice(ctx, lot.ID, field)
	if err != nil {
		e.logger.Warn("PriceLot: cache read failed for lot=%d: %v", lot.ID, err)
	}
	if found {
		return price
	}

	price = e.PriceParking(lot.BaseHourlyRate, window, class)

	if err := e.cache.SetPrice(ctx, lot.ID, field, price); err != nil {
		e.logger.Warn("PriceLot: cache write failed for lot=%d: %v", lot.ID, err)
	}

	return price
}

// InvalidateLot сбрасывает кэшированные цены лота
func (e *CachedEngine) InvalidateLot(ctx context.Context, lotID int64) {
	if e.cache == nil {
		return
	}
	if err := e.cache.InvalidateLot(ctx, lotID); err != nil {
		e.logger.Warn("InvalidateLot: failed to drop pricing cache for lot=%d: %v", lotID, err)
	}
}

// CacheField поле кэша: отпечаток:часы:день недели:час:класс:тариф
func (e *CachedEngine) CacheField(rate decimal.Decimal, window domain.Window, class domain.BookingClass) string {
	weekday, hour := e.BucketOf(window.Start)
	return fmt.Sprintf("%s:%d:%d:%d:%s:%s",
		e.fingerprint, BillableHours(window), int(weekday), hour, class, rate.StringFixed(priceScale))
}
