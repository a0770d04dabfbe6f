package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/PSB-BookingService/internal/api/handlers"
)

type contextKey string

// userIDKey ключ контекста для ID аутентифицированного пользователя
const userIDKey contextKey = "userID"

// userIDHeader заголовок, который проставляет API gateway после аутентификации
const userIDHeader = "X-User-ID"

// Auth проверяет наличие корректного X-User-ID заголовка и кладёт
// ID пользователя в контекст запроса. Сервис доверяет заголовку:
// аутентификация выполняется выше по цепочке, на gateway.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(userIDHeader)
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста запроса.
// Возвращает (0, false) вне цепочки Auth.
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
