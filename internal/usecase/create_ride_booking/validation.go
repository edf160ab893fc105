package create_ride_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

// validateRequest валидирует запрос и заполняет значения по умолчанию
func validateRequest(req *Request, user domain.UserRef) error {
	if user.ID <= 0 {
		return fmt.Errorf("%w: user is required", ErrInvalidInput)
	}

	if req.ParkingBookingID != nil && *req.ParkingBookingID <= 0 {
		return fmt.Errorf("%w: parkingBookingId must be positive", ErrInvalidInput)
	}

	if err := validatePoint("pickup", &req.Pickup); err != nil {
		return err
	}
	if err := validatePoint("dropoff", &req.Dropoff); err != nil {
		return err
	}

	if req.Class == "" {
		req.Class = domain.RideClassCab
	}
	if !req.Class.IsValid() {
		return fmt.Errorf("%w: unknown ride class %q", ErrInvalidInput, req.Class)
	}

	if req.MaxPassengers == 0 {
		req.MaxPassengers = domain.DefaultMaxPassengers
	}
	if req.MaxPassengers < 1 || req.MaxPassengers > domain.MaxPassengersLimit {
		return fmt.Errorf("%w: maxPassengers must be between 1 and %d", ErrInvalidInput, domain.MaxPassengersLimit)
	}

	return nil
}

func validatePoint(name string, p *Point) error {
	p.Label = strings.TrimSpace(p.Label)
	if p.Label == "" {
		return fmt.Errorf("%w: %s location is required", ErrInvalidInput, name)
	}
	if len(p.Label) > domain.MaxLocationLabelLength {
		return fmt.Errorf("%w: %s location exceeds %d characters", ErrInvalidInput, name, domain.MaxLocationLabelLength)
	}

	// Координаты либо обе, либо ни одной
	if (p.Latitude == nil) != (p.Longitude == nil) {
		return fmt.Errorf("%w: %s needs both latitude and longitude", ErrInvalidInput, name)
	}
	if p.Latitude != nil {
		if *p.Latitude < -90 || *p.Latitude > 90 {
			return fmt.Errorf("%w: %s latitude out of range", ErrInvalidInput, name)
		}
		if *p.Longitude < -180 || *p.Longitude > 180 {
			return fmt.Errorf("%w: %s longitude out of range", ErrInvalidInput, name)
		}
	}

	return nil
}
