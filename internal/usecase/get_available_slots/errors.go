package get_available_slots

import "errors"

var (
	// ErrStudioNotFound возвращается, когда студия не найдена.
	// Отличается от закрытого дня: закрытый день — это успешный пустой результат.
	ErrStudioNotFound = errors.New("get_available_slots: studio not found")

	// ErrFacilityNotFound возвращается, когда facility не найден или
	// принадлежит другой студии
	ErrFacilityNotFound = errors.New("get_available_slots: facility not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
