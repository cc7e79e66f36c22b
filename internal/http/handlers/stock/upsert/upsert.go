// Package upsert реализует HTTP-обработчик установки остатка товара.
// Запись создаётся, если её ещё нет, иначе перезаписывается.
package upsert

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/adsodigital/inventory-api/internal/http/response"
	"github.com/adsodigital/inventory-api/internal/lib/sl"
	"github.com/adsodigital/inventory-api/internal/models"
	"github.com/adsodigital/inventory-api/internal/storage/repository"
)

// Request — целевое количество на складе.
type Request struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

// Service описывает интерфейс установки остатка.
type Service interface {
	CreateOrUpdate(ctx context.Context, productID int64, quantity int) (*models.Stock, error)
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
// @Summary      Установка остатка
// @Description  Устанавливает количество товара на складе
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        product_id path int true "ID товара"
// @Param        request body Request true "Количество"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Failure      422 {object} response.Response
// @Router       /api/v1/stock/{product_id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stock.upsert"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil {
		log.Error("failed to decode product_id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid product id"))
		return
	}

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

	st, err := h.service.CreateOrUpdate(r.Context(), productID, *req.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("product not found"))
			return
		}
		log.Error("failed to set stock", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not set stock"))
		return
	}

	log.Info("stock set", slog.Int64("product_id", productID), slog.Int("quantity", st.Quantity))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"stock": st,
	}))
}
