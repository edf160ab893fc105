package lot

import "errors"

var (
	// ErrLotNotFound возвращается, когда лот не найден
	ErrLotNotFound = errors.New("lot.repository: lot not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("lot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("lot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("lot.repository: failed to scan row")
)
