package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RideClass represents the kind of vehicle for a ride
type RideClass string

const (
	RideClassCab          RideClass = "CAB"
	RideClassShuttle      RideClass = "SHUTTLE"
	RideClassERickshaw    RideClass = "E_RICKSHAW"
	RideClassAutoRickshaw RideClass = "AUTO_RICKSHAW"
)

// IsValid returns true if the class is known
func (c RideClass) IsValid() bool {
	switch c {
	case RideClassCab, RideClassShuttle, RideClassERickshaw, RideClassAutoRickshaw:
		return true
	}
	return false
}

// RideStatus represents the status of a ride booking
type RideStatus string

const (
	RideStatusRequested      RideStatus = "REQUESTED"
	RideStatusConfirmed      RideStatus = "CONFIRMED"
	RideStatusDriverAssigned RideStatus = "DRIVER_ASSIGNED"
	RideStatusPickup         RideStatus = "PICKUP"
	RideStatusInProgress     RideStatus = "IN_PROGRESS"
	RideStatusCompleted      RideStatus = "COMPLETED"
	RideStatusCancelled      RideStatus = "CANCELLED"
)

// rideStatusRank порядок статусов на пути поездки
var rideStatusRank = map[RideStatus]int{
	RideStatusRequested:      0,
	RideStatusConfirmed:      1,
	RideStatusDriverAssigned: 2,
	RideStatusPickup:         3,
	RideStatusInProgress:     4,
	RideStatusCompleted:      5,
}

// IsValid returns true if the status is known
func (s RideStatus) IsValid() bool {
	if s == RideStatusCancelled {
		return true
	}
	_, ok := rideStatusRank[s]
	return ok
}

// IsTerminal returns true if nothing can follow the status
func (s RideStatus) IsTerminal() bool {
	return s == RideStatusCompleted || s == RideStatusCancelled
}

// CanTransitionTo returns true if the ride may move from s to next.
// Rides only move forward; CANCELLED is reachable from any non-terminal status
func (s RideStatus) CanTransitionTo(next RideStatus) bool {
	if s.IsTerminal() || !next.IsValid() {
		return false
	}
	if next == RideStatusCancelled {
		return true
	}
	return rideStatusRank[next] > rideStatusRank[s]
}

// Location pickup or dropoff point
type Location struct {
	Label string
	Point *GeoPoint // nil when coordinates are unknown
}

// Driver driver and vehicle descriptors assigned by dispatch
type Driver struct {
	Name          string
	Phone         string
	VehicleNumber string
	VehicleModel  string
}

// IsAssigned returns true if dispatch filled the descriptors
func (d Driver) IsAssigned() bool {
	return d.Name != ""
}

// RideBooking represents an on-demand last-mile ride
type RideBooking struct {
	ID               int64
	UserID           int64
	ParkingBookingID *int64
	Pickup           Location
	Dropoff          Location
	RequestedTime    time.Time
	ScheduledTime    *time.Time
	ActualPickup     *time.Time
	ActualDropoff    *time.Time
	Class            RideClass
	Status           RideStatus
	EstimatedFare    decimal.Decimal
	ActualFare       *decimal.Decimal
	Driver           Driver
	IsShared         bool
	MaxPassengers    int
	PoolingGroupID   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpenForPooling returns true if the ride can represent a group other riders join
func (r *RideBooking) IsOpenForPooling() bool {
	return r.IsShared && r.Status == RideStatusConfirmed && r.PoolingGroupID != nil
}

// PoolingGroup open shared group with its representative member
type PoolingGroup struct {
	ID             string
	Representative *RideBooking
	MemberCount    int
}

// HasSeat returns true if one more rider fits into the group
func (g *PoolingGroup) HasSeat() bool {
	return g.MemberCount < g.Representative.MaxPassengers
}
