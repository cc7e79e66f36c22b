package middlewarectx

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/adsodigital/inventory-api/internal/http/response"
	"github.com/adsodigital/inventory-api/internal/lib/jwt"
	"github.com/adsodigital/inventory-api/internal/lib/sl"
	"github.com/adsodigital/inventory-api/internal/models"
	"github.com/adsodigital/inventory-api/internal/storage/repository"
)

// rejection — отказ цепочки авторизации с HTTP-статусом и сообщением клиенту.
type rejection struct {
	status  int
	message string
	cause   error
}

// resolveUser выполняет цепочку: bearer-токен → проверка подписи, срока и
// типа → разбор subject → перечитывание пользователя из хранилища.
//
// Причины отказа подписи, кодировки и истечения срока клиенту не
// различаются. Тип токена проверяется явно: reset- или verify-токен на
// access-пути отклоняется так же, как любой недействительный токен.
func resolveUser(r *http.Request, maker jwt.Maker, users UserProvider) (*models.User, *rejection) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, &rejection{
			status:  http.StatusUnauthorized,
			message: "missing or invalid authorization header",
		}
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := maker.ParseTyped(tokenStr, jwt.TokenAccess)
	if err != nil {
		return nil, &rejection{
			status:  http.StatusUnauthorized,
			message: "invalid or expired token",
			cause:   err,
		}
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, &rejection{
			status:  http.StatusUnauthorized,
			message: "malformed token subject",
			cause:   err,
		}
	}

	user, err := users.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &rejection{
				status:  http.StatusUnauthorized,
				message: "user not found",
				cause:   err,
			}
		}
		return nil, &rejection{
			status:  http.StatusInternalServerError,
			message: "internal service error",
			cause:   err,
		}
	}
	return user, nil
}

func reject(w http.ResponseWriter, r *http.Request, log *slog.Logger, rej *rejection) {
	if rej.cause != nil {
		log.Error(rej.message, sl.Err(rej.cause))
	} else {
		log.Error(rej.message)
	}
	w.WriteHeader(rej.status)
	render.JSON(w, r, response.Error(rej.message))
}

// Authenticate возвращает middleware обязательной аутентификации.
//
// При успехе разрешённый пользователь помещается в контекст запроса,
// иначе возвращается ошибка с HTTP статусом 401.
func Authenticate(maker jwt.Maker, users UserProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Authenticate"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			user, rej := resolveUser(r, maker, users)
			if rej != nil {
				reject(w, r, log, rej)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// AuthenticateOptional возвращает middleware необязательной аутентификации.
//
// Выполняет ту же цепочку проверок, но никогда не отказывает: при любом
// сбое запрос продолжается анонимно, без пользователя в контексте.
func AuthenticateOptional(maker jwt.Maker, users UserProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthenticateOptional"

			user, rej := resolveUser(r, maker, users)
			if rej != nil {
				if rej.cause != nil {
					log.Debug("anonymous request", slog.String("op", op), sl.Err(rej.cause))
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}
