package studio

import "errors"

var (
	// ErrStudioNotFound возвращается, когда студия не найдена
	ErrStudioNotFound = errors.New("studio.repository: studio not found")

	// ErrFacilityNotFound возвращается, когда facility не найден
	ErrFacilityNotFound = errors.New("studio.repository: facility not found")

	// ErrAddonNotFound возвращается, когда услуга не найдена
	ErrAddonNotFound = errors.New("studio.repository: addon not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("studio.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("studio.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("studio.repository: failed to scan row")
)
