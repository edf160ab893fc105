package domain

// Поездки
const (
	DefaultRideDistanceKm = 5.0 // если у точки нет координат
)

// Pooling
const (
	DefaultPoolingRadiusMeters = 1000.0
	DefaultMaxPassengers       = 1

	PoolingLockKey = "rides:pooling" // одна блокировка на весь скан открытых групп
)

// Business validation constants
const (
	MaxVehicleNumberLength = 20
	MaxLocationLabelLength = 255
	MaxPassengersLimit     = 8
	AccessPinLength        = 4
)

// LiveBookingStatuses статусы, которые занимают место на парковке
var LiveBookingStatuses = []BookingStatus{
	BookingStatusConfirmed,
	BookingStatusActive,
}

// TerminalBookingStatuses статусы, после которых бронирование неизменяемо
var TerminalBookingStatuses = []BookingStatus{
	BookingStatusCompleted,
	BookingStatusCancelled,
	BookingStatusNoShow,
}
