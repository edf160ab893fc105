package create_parking_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

// validateRequest валидирует входные данные запроса и нормализует класс
func validateRequest(req *Request, user domain.UserRef, now time.Time) error {
	if user.ID <= 0 {
		return fmt.Errorf("%w: user is required", ErrInvalidInput)
	}

	if req.LotID <= 0 {
		return fmt.Errorf("%w: lotID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	// Окно полуоткрытое, пустое окно не бронируется
	if !req.EndTime.After(req.StartTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	if !req.EndTime.After(now) {
		return fmt.Errorf("%w: window is already over", ErrInvalidInput)
	}

	if req.Class == "" {
		req.Class = domain.BookingClassHourly
	}
	if !req.Class.IsValid() {
		return fmt.Errorf("%w: unknown booking class %q", ErrInvalidInput, req.Class)
	}

	if req.VehicleNumber != nil {
		v := strings.TrimSpace(*req.VehicleNumber)
		if len(v) > domain.MaxVehicleNumberLength {
			return fmt.Errorf("%w: vehicleNumber exceeds %d characters", ErrInvalidInput, domain.MaxVehicleNumberLength)
		}
		if v == "" {
			req.VehicleNumber = nil
		} else {
			req.VehicleNumber = &v
		}
	}

	return nil
}
