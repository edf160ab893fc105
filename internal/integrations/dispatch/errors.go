package dispatch

import "errors"

// ErrNoRide возвращается, когда поездка не передана
var ErrNoRide = errors.New("dispatch: ride is required")
