package pooling

import "errors"

var (
	// ErrListGroups возвращается, когда не удалось получить открытые группы
	ErrListGroups = errors.New("pooling: failed to list open groups")

	// ErrDispatch возвращается, когда не удалось назначить водителя
	ErrDispatch = errors.New("pooling: failed to assign driver")
)
