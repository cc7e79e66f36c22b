// Package read реализует HTTP-обработчик чтения товара по ID или артикулу.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/adsodigital/inventory-api/internal/http/response"
	"github.com/adsodigital/inventory-api/internal/lib/sl"
	"github.com/adsodigital/inventory-api/internal/models"
	"github.com/adsodigital/inventory-api/internal/storage/repository"
)

// Service описывает интерфейс чтения товара.
type Service interface {
	Read(ctx context.Context, id int64) (*models.Product, error)
	ReadBySKU(ctx context.Context, sku string) (*models.Product, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP обрабатывает запрос чтения товара по ID.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid product id"))
		return
	}

	product, err := h.service.Read(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("product not found"))
			return
		}
		log.Error("failed to read product", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read product"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"product": product,
	}))
}

// BySKU обрабатывает запрос чтения товара по артикулу.
func (h *Handler) BySKU(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.read.BySKU"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sku := chi.URLParam(r, "sku")
	if sku == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid product sku"))
		return
	}

	product, err := h.service.ReadBySKU(r.Context(), sku)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("product not found"))
			return
		}
		log.Error("failed to read product by sku", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read product"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"product": product,
	}))
}
