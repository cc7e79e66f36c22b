// Package create реализует HTTP-обработчик добавления товара в каталог.
//
// Handler декодирует и валидирует тело запроса, вызывает бизнес-логику
// создания товара и возвращает созданную запись в JSON-формате.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/adsodigital/inventory-api/internal/http/response"
	"github.com/adsodigital/inventory-api/internal/lib/sl"
	"github.com/adsodigital/inventory-api/internal/models"
	"github.com/adsodigital/inventory-api/internal/storage/repository"
)

// Request — данные нового товара.
type Request struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	SKU         string  `json:"sku" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

// Service описывает интерфейс бизнес-логики создания товара.
type Service interface {
	Create(ctx context.Context, product models.Product) (*models.Product, error)
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
// @Summary      Создание товара
// @Description  Добавляет новый товар в каталог
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body Request true "Данные товара"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      422 {object} response.Response
// @Router       /api/v1/products [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.create"

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

	product, err := h.service.Create(r.Context(), models.Product{
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		Price:       req.Price,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSKU) {
			log.Warn("duplicate sku", slog.String("sku", req.SKU))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("sku already exists"))
			return
		}
		log.Error("failed to create product", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create product"))
		return
	}

	log.Info("created product", slog.Int64("id", product.ID), slog.String("sku", product.SKU))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"product": product,
	}))
}
