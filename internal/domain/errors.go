package domain

import "errors"

// Виды ошибок ядра. Ошибки пакетов оборачивают один из них,
// поэтому вызывающий код проверяет вид через errors.Is
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrInvalidInput      = errors.New("invalid input")
)
