package pricing

import (
	"time"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine рассчитывает стоимость парковки и поездок.
// Не зависит от текущего времени: все моменты передаются явно
type Engine struct {
	cfg Config
}

// NewEngine создает движок тарификации
func NewEngine(cfg Config) *Engine {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Engine{cfg: cfg}
}

// PriceParking считает стоимость бронирования окна по часовому тарифу лота.
// Неположительный тариф заменяется базовым из конфигурации
func (e *Engine) PriceParking(rate decimal.Decimal, window domain.Window, class domain.BookingClass) decimal.Decimal {
	if !rate.IsPositive() {
		rate = e.cfg.BaseRate
	}

	amount := rate.Mul(decimal.NewFromInt(BillableHours(window)))

	start := window.Start.In(e.cfg.Location)
	if IsPeakHour(start) {
		amount = amount.Mul(e.cfg.PeakMultiplier)
	}
	if IsSurgeTime(start) {
		amount = amount.Mul(e.cfg.SurgeMultiplier)
	}

	amount = amount.Mul(e.discount(class))

	return amount.Round(priceScale)
}

// PriceRide считает стоимость поездки по расстоянию между точками.
// Если у точки нет координат, берется расстояние по умолчанию
func (e *Engine) PriceRide(pickup, dropoff *domain.GeoPoint, class domain.RideClass, requested time.Time) decimal.Decimal {
	tariff, ok := rideTariffs[class]
	if !ok {
		tariff = rideTariffs[domain.RideClassCab]
	}

	distance := RideDistanceKm(pickup, dropoff)
	amount := tariff.baseFare.Add(decimal.NewFromFloat(distance).Mul(tariff.perKm))

	if IsPeakHour(requested.In(e.cfg.Location)) {
		amount = amount.Mul(e.cfg.PeakMultiplier)
	}

	return amount.Round(priceScale)
}

// BucketOf возвращает временную корзину, от которой зависят множители
func (e *Engine) BucketOf(t time.Time) (weekday time.Weekday, hour int) {
	local := t.In(e.cfg.Location)
	return local.Weekday(), local.Hour()
}

func (e *Engine) discount(class domain.BookingClass) decimal.Decimal {
	switch class {
	case domain.BookingClassDaily:
		return e.cfg.DailyDiscount
	case domain.BookingClassMonthly:
		return e.cfg.MonthlyDiscount
	default:
		return decimal.NewFromInt(1)
	}
}

// BillableHours целые часы окна, но не меньше одного
func BillableHours(window domain.Window) int64 {
	hours := int64(window.Duration() / time.Hour)
	if hours < 1 {
		return 1
	}
	return hours
}

// IsPeakHour сообщает, попадает ли час начала в часы пик
func IsPeakHour(t time.Time) bool {
	return peakHours[t.Hour()]
}

// IsSurgeTime будний день и час в [8, 18]
func IsSurgeTime(t time.Time) bool {
	wd := t.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return t.Hour() >= surgeFromHour && t.Hour() <= surgeToHour
}

// RideDistanceKm расстояние по большой окружности или значение по умолчанию
func RideDistanceKm(pickup, dropoff *domain.GeoPoint) float64 {
	if pickup == nil || dropoff == nil {
		return domain.DefaultRideDistanceKm
	}
	return domain.HaversineKm(*pickup, *dropoff)
}
