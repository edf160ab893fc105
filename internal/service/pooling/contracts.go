package pooling

import (
	"context"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

// GroupRepository интерфейс поиска открытых совместных групп
type GroupRepository interface {
	ListOpenSharedGroups(ctx context.Context) ([]*domain.PoolingGroup, error)
}

// Dispatcher интерфейс назначения водителя
type Dispatcher interface {
	AssignDriver(ctx context.Context, ride *domain.RideBooking) (domain.Driver, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
