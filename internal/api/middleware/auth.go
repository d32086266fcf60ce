package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/GSB-BookingService/internal/api/handlers"
)

const (
	// HeaderUserID заголовок аутентификации, проставляется шлюзом
	HeaderUserID = "X-User-ID"

	msgUnauthorized = "требуется аутентификация"
)

type userIDKey struct{}

// Auth требует валидный заголовок X-User-ID и кладёт ID пользователя в контекст
// Сама аутентификация - забота шлюза, сервис доверяет заголовку
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext возвращает ID пользователя, положенный Auth-middleware
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok
}
