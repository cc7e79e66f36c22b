package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/adsodigital/inventory-api/internal/http/response"
)

// RequireActive пропускает только активных пользователей.
//
// Флаг проверяется по записи, перечитанной из хранилища в Authenticate,
// поэтому деактивация действует немедленно: криптографически валидный
// токен деактивированного пользователя отклоняется.
func RequireActive(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireActive"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error("user missing in context")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}
			if !user.IsActive {
				log.Error("inactive user", slog.Int64("id", user.ID))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("inactive user"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSuperuser пропускает только привилегированных пользователей.
//
// Привилегия берётся из хранилища, а не из claims токена: повышение или
// понижение пользователя действует для уже выданных токенов.
func RequireSuperuser(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireSuperuser"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error("user missing in context")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}
			if !user.IsSuperuser {
				log.Error("insufficient privilege", slog.Int64("id", user.ID))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("insufficient privilege"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
