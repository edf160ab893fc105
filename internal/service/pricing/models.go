package pricing

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
	"github.com/shopspring/decimal"
)

// Config параметры тарификации
type Config struct {
	BaseRate        decimal.Decimal // используется, если у лота не задан тариф
	PeakMultiplier  decimal.Decimal
	SurgeMultiplier decimal.Decimal
	DailyDiscount   decimal.Decimal
	MonthlyDiscount decimal.Decimal
	Location        *time.Location // часовой пояс для часов пик и будних дней
}

// Fingerprint короткий отпечаток настроек, влияющих на цену парковки.
// Входит в поле кэша, чтобы после смены настроек не отдавались старые цены
func (c Config) Fingerprint() string {
	loc := "UTC"
	if c.Location != nil {
		loc = c.Location.String()
	}
	h := fnv.New32a()
	_, _ = fmt.Fprintf(h, "%s|%s|%s|%s|%s|%s",
		c.BaseRate.String(), c.PeakMultiplier.String(), c.SurgeMultiplier.String(),
		c.DailyDiscount.String(), c.MonthlyDiscount.String(), loc)
	return fmt.Sprintf("%08x", h.Sum32())
}

// DefaultConfig значения по умолчанию
func DefaultConfig() Config {
	return Config{
		BaseRate:        decimal.NewFromInt(50),
		PeakMultiplier:  decimal.RequireFromString("1.5"),
		SurgeMultiplier: decimal.NewFromInt(2),
		DailyDiscount:   decimal.RequireFromString("0.9"),
		MonthlyDiscount: decimal.RequireFromString("0.8"),
		Location:        time.UTC,
	}
}

// rideTariff базовая стоимость и цена километра для класса поездки
type rideTariff struct {
	baseFare decimal.Decimal
	perKm    decimal.Decimal
}

var rideTariffs = map[domain.RideClass]rideTariff{
	domain.RideClassCab:          {baseFare: decimal.NewFromInt(50), perKm: decimal.NewFromInt(12)},
	domain.RideClassShuttle:      {baseFare: decimal.NewFromInt(30), perKm: decimal.NewFromInt(8)},
	domain.RideClassERickshaw:    {baseFare: decimal.NewFromInt(20), perKm: decimal.NewFromInt(6)},
	domain.RideClassAutoRickshaw: {baseFare: decimal.NewFromInt(25), perKm: decimal.NewFromInt(10)},
}

// Часы пик: 07-10 и 17-20 включительно
var peakHours = map[int]bool{
	7: true, 8: true, 9: true, 10: true,
	17: true, 18: true, 19: true, 20: true,
}

const (
	surgeFromHour = 8
	surgeToHour   = 18
	priceScale    = 2
)
