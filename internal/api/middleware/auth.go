package middleware

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
)

const (
	bearerPrefix = "Bearer "

	msgMissingToken = "требуется авторизация администратора"
	msgInvalidToken = "неверный секрет администратора"
)

// AdminAuth проверяет общий секрет администратора из заголовка
// Authorization: Bearer <secret> по bcrypt хешу из конфигурации
func AdminAuth(passwordHash string, logger Logger) func(http.Handler) http.Handler {
	hash := []byte(passwordHash)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				logger.Warn("AdminAuth: missing bearer token: %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			secret := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
			if err := bcrypt.CompareHashAndPassword(hash, []byte(secret)); err != nil {
				logger.Warn("AdminAuth: invalid secret: %s %s, remote=%s", r.Method, r.URL.Path, clientIP(r))
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
