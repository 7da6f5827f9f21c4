package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

// UserIDHeader идентификатор пользователя, проставляется API gateway
const UserIDHeader = "X-User-ID"

type ctxKey struct{}

// Auth пропускает только запросы с заголовком X-User-ID
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "требуется заголовок "+UserIDHeader)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, userID)))
	})
}

// UserID достаёт идентификатор пользователя из контекста
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok
}
