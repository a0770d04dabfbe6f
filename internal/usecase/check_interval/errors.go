package check_interval

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда facility не найден
	ErrFacilityNotFound = errors.New("check_interval: facility not found")

	// ErrInvalidInterval возвращается при некорректном интервале (end <= start
	// или нечитаемое время)
	ErrInvalidInterval = errors.New("check_interval: invalid time interval")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_interval: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_interval: internal error")
)
