package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// LotStatus represents the status of a parking lot
type LotStatus string

const (
	LotStatusActive      LotStatus = "ACTIVE"
	LotStatusInactive    LotStatus = "INACTIVE"
	LotStatusMaintenance LotStatus = "MAINTENANCE"
)

// IsValid returns true if the status is known
func (s LotStatus) IsValid() bool {
	switch s {
	case LotStatusActive, LotStatusInactive, LotStatusMaintenance:
		return true
	}
	return false
}

// Lot represents a parking facility
type Lot struct {
	ID                int64
	Name              string
	Address           string
	Latitude          float64
	Longitude         float64
	TotalUnits        int
	AvailableUnits    int // cached counter: TotalUnits minus live CONFIRMED/ACTIVE bookings
	BaseHourlyRate    decimal.Decimal
	MetroStationName  string
	DistanceFromMetro float64 // meters
	Status            LotStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Position returns the lot coordinates
func (l *Lot) Position() GeoPoint {
	return GeoPoint{Latitude: l.Latitude, Longitude: l.Longitude}
}

// IsActive returns true if the lot accepts bookings
func (l *Lot) IsActive() bool {
	return l.Status == LotStatusActive
}

// IsFull returns true if the lot has no available units
func (l *Lot) IsFull() bool {
	return l.AvailableUnits <= 0
}

// AvailableFor returns the availableUnits value for the given number of live bookings,
// clamped to [0, TotalUnits]. Bookings in disjoint windows may outnumber the units
func (l *Lot) AvailableFor(live int) int {
	available := l.TotalUnits - live
	if available < 0 {
		return 0
	}
	if available > l.TotalUnits {
		return l.TotalUnits
	}
	return available
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (l *Lot) OccupancyRate() float64 {
	if l.TotalUnits == 0 {
		return 0
	}
	occupied := l.TotalUnits - l.AvailableUnits
	return float64(occupied) / float64(l.TotalUnits) * 100
}

// LotsFilter фильтр списка лотов
type LotsFilter struct {
	Status           *LotStatus
	MetroStationName *string
	OnlyWithUnits    bool // только лоты со свободными местами
}

// LotLockKey key of the in-process lock that serializes capacity changes of one lot
func LotLockKey(lotID int64) string {
	return "lot:" + strconv.FormatInt(lotID, 10)
}
