package noshow

import (
	"context"
	"time"
)

// Sweeper интерфейс перевода просроченных бронирований в NO_SHOW
type Sweeper interface {
	MarkNoShows(ctx context.Context, now time.Time, grace time.Duration, limit uint64) (int, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
