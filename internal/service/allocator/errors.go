package allocator

import "errors"

// ErrInternal возвращается при ошибках хранилища
var ErrInternal = errors.New("allocator: internal error")
