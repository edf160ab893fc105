package noshow

import "errors"

var (
	// ErrInvalidSchedule возвращается при некорректном расписании
	ErrInvalidSchedule = errors.New("noshow: invalid schedule")

	// ErrSweepFailed возвращается, когда проход завершился ошибкой
	ErrSweepFailed = errors.New("noshow: sweep failed")
)
