package spot

import "errors"

var (
	// ErrSpotNotFound возвращается, когда место не найдено
	ErrSpotNotFound = errors.New("spot.repository: spot not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("spot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("spot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("spot.repository: failed to scan row")
)
