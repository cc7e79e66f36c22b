// Package resetconfirm реализует установку нового пароля по токену сброса.
package resetconfirm

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/adsodigital/inventory-api/internal/http/response"
	"github.com/adsodigital/inventory-api/internal/lib/sl"
)

// Request — токен сброса и новый пароль.
type Request struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// Service описывает интерфейс сброса пароля.
type Service interface {
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает HTTP-запрос.
//
// @Summary      Сброс пароля
// @Description  Устанавливает новый пароль по токену из письма
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body Request true "Токен и новый пароль"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      422 {object} response.Response
// @Router       /api/v1/auth/reset-password/confirm [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.resetconfirm"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		log.Error("failed to reset password", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid or expired token"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "password updated",
	}))
}
