package notify

import "errors"

var (
	// ErrInternal возвращается при ошибках построения/выполнения запроса
	ErrInternal = errors.New("notify.client: internal error")

	// ErrInvalidResponse возвращается при неожиданном ответе сервиса уведомлений
	ErrInvalidResponse = errors.New("notify.client: invalid response")

	// ErrServiceDegraded возвращается при недоступности сервиса уведомлений.
	// Коммит бронирования никогда не фейлится из-за уведомления —
	// вызывающий код логирует и продолжает.
	ErrServiceDegraded = errors.New("notify.client: service degraded")
)
