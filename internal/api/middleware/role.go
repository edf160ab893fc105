package middleware

import (
	"net/http"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
)

const msgAdminOnly = "доступ только для администратора"

// RequireAdmin пропускает только администраторов. Подключается после Auth
func RequireAdmin(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				logger.Warn("%s %s - No user in context", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingUser)
				return
			}

			if !user.IsAdmin() {
				logger.Warn("%s %s - Forbidden: user_id=%d, role=%s", r.Method, r.URL.Path, user.ID, user.Role)
				handlers.RespondForbidden(w, msgAdminOnly)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
