package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a parking booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusNoShow    BookingStatus = "NO_SHOW"
)

// IsValid returns true if the status is known
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusActive, BookingStatusCompleted,
		BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}

// BookingClass represents the tariff class of a parking booking
type BookingClass string

const (
	BookingClassHourly  BookingClass = "HOURLY"
	BookingClassDaily   BookingClass = "DAILY"
	BookingClassMonthly BookingClass = "MONTHLY"
)

// IsValid returns true if the class is known
func (c BookingClass) IsValid() bool {
	switch c {
	case BookingClassHourly, BookingClassDaily, BookingClassMonthly:
		return true
	}
	return false
}

// ParkingBooking represents a time-boxed reservation of a lot unit
type ParkingBooking struct {
	ID            int64
	UserID        int64
	LotID         int64
	SpotID        *int64 // physical spot assignment is best-effort
	Window        Window
	ActualStart   *time.Time
	ActualEnd     *time.Time
	TotalAmount   decimal.Decimal
	Status        BookingStatus
	Class         BookingClass
	AccessPin     string
	QRPayload     *string
	VehicleNumber *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLive returns true if the booking holds lot capacity
func (b *ParkingBooking) IsLive() bool {
	return b.Status == BookingStatusConfirmed || b.Status == BookingStatusActive
}

// IsTerminal returns true if the booking can no longer change
func (b *ParkingBooking) IsTerminal() bool {
	return b.Status == BookingStatusCompleted ||
		b.Status == BookingStatusCancelled ||
		b.Status == BookingStatusNoShow
}

// CanStart returns true if parking can start
func (b *ParkingBooking) CanStart() bool {
	return b.Status == BookingStatusConfirmed
}

// CanEnd returns true if parking can end
func (b *ParkingBooking) CanEnd() bool {
	return b.Status == BookingStatusActive
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *ParkingBooking) CanBeCancelled() bool {
	return b.Status == BookingStatusConfirmed
}

// IsNoShowAt returns true if a confirmed booking was not started within grace after its start
func (b *ParkingBooking) IsNoShowAt(now time.Time, grace time.Duration) bool {
	return b.Status == BookingStatusConfirmed &&
		b.ActualStart == nil &&
		!now.Before(b.Window.Start.Add(grace))
}

// HasSpot returns true if a physical spot was assigned
func (b *ParkingBooking) HasSpot() bool {
	return b.SpotID != nil
}

// ParkingBookingsFilter фильтр бронирований парковки
type ParkingBookingsFilter struct {
	LotID    *int64
	UserID   *int64
	Statuses []BookingStatus // пусто - любые статусы
	Window   *Window         // только бронирования, пересекающие окно
	Limit    uint64
}
