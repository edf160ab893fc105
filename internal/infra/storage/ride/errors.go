package ride

import "errors"

var (
	// ErrRideNotFound возвращается, когда поездка не найдена
	ErrRideNotFound = errors.New("ride.repository: ride not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("ride.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("ride.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("ride.repository: failed to scan row")
)
