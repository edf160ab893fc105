package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ParkRideService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

// UserNameHeader заголовок с именем аутентифицированного пользователя
const UserNameHeader = "X-User-Name"

const (
	msgMissingUser     = "отсутствует имя пользователя"
	msgUnknownUser     = "пользователь не найден"
	msgUserUnavailable = "сервис пользователей недоступен"
)

type userKey struct{}

// Auth разрешает пользователя по заголовку X-User-Name и кладет его в контекст
func Auth(resolver UserResolver, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := strings.TrimSpace(r.Header.Get(UserNameHeader))
			if username == "" {
				logger.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, UserNameHeader)
				handlers.RespondUnauthorized(w, msgMissingUser)
				return
			}

			user, err := resolver.FindUser(r.Context(), username)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					logger.Warn("%s %s - Unknown user: username=%s", r.Method, r.URL.Path, username)
					handlers.RespondUnauthorized(w, msgUnknownUser)
					return
				}
				logger.Error("%s %s - Failed to resolve user: username=%s, error=%v", r.Method, r.URL.Path, username, err)
				handlers.RespondServiceUnavailable(w, msgUserUnavailable)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser кладет пользователя в контекст
func WithUser(ctx context.Context, user domain.UserRef) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser достает пользователя из контекста
func GetUser(ctx context.Context) (domain.UserRef, bool) {
	user, ok := ctx.Value(userKey{}).(domain.UserRef)
	return user, ok
}
