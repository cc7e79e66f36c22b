// Package inventory предоставляет маршруты для основного приложения.
package inventory

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/adsodigital/inventory-api/internal/http/handlers/auth/login"
	"github.com/adsodigital/inventory-api/internal/http/handlers/auth/refresh"
	"github.com/adsodigital/inventory-api/internal/http/handlers/auth/register"
	"github.com/adsodigital/inventory-api/internal/http/handlers/auth/resetconfirm"
	"github.com/adsodigital/inventory-api/internal/http/handlers/auth/resetrequest"
	"github.com/adsodigital/inventory-api/internal/http/handlers/auth/verifyconfirm"
	"github.com/adsodigital/inventory-api/internal/http/handlers/auth/verifyrequest"
	"github.com/adsodigital/inventory-api/internal/http/handlers/health"
	productcreate "github.com/adsodigital/inventory-api/internal/http/handlers/product/create"
	productlist "github.com/adsodigital/inventory-api/internal/http/handlers/product/list"
	productread "github.com/adsodigital/inventory-api/internal/http/handlers/product/read"
	productremove "github.com/adsodigital/inventory-api/internal/http/handlers/product/remove"
	productupdate "github.com/adsodigital/inventory-api/internal/http/handlers/product/update"
	stockadjust "github.com/adsodigital/inventory-api/internal/http/handlers/stock/adjust"
	stocklist "github.com/adsodigital/inventory-api/internal/http/handlers/stock/list"
	stockread "github.com/adsodigital/inventory-api/internal/http/handlers/stock/read"
	stockupsert "github.com/adsodigital/inventory-api/internal/http/handlers/stock/upsert"
	userlist "github.com/adsodigital/inventory-api/internal/http/handlers/user/list"
	userme "github.com/adsodigital/inventory-api/internal/http/handlers/user/me"
	userread "github.com/adsodigital/inventory-api/internal/http/handlers/user/read"
	usersetactive "github.com/adsodigital/inventory-api/internal/http/handlers/user/setactive"
	usersetsuperuser "github.com/adsodigital/inventory-api/internal/http/handlers/user/setsuperuser"
	userupdateme "github.com/adsodigital/inventory-api/internal/http/handlers/user/updateme"
	"github.com/adsodigital/inventory-api/internal/http/middlewarectx"
	"github.com/adsodigital/inventory-api/internal/lib/jwt"
	authservice "github.com/adsodigital/inventory-api/internal/services/auth"
	productservice "github.com/adsodigital/inventory-api/internal/services/product"
	stockservice "github.com/adsodigital/inventory-api/internal/services/stock"
	userservice "github.com/adsodigital/inventory-api/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, users middlewarectx.UserProvider,
	authService *authservice.Service, userService *userservice.Service,
	productService *productservice.Service, stockService *stockservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Post("/auth/refresh", refresh.New(logger, authService).ServeHTTP)
		r.Post("/auth/reset-password", resetrequest.New(logger, authService).ServeHTTP)
		r.Post("/auth/reset-password/confirm", resetconfirm.New(logger, authService).ServeHTTP)
		r.Post("/auth/verify-email", verifyrequest.New(logger, authService).ServeHTTP)
		r.Post("/auth/verify-email/confirm", verifyconfirm.New(logger, authService).ServeHTTP)

		// Чтение каталога и остатков доступно без токена
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthenticateOptional(jwtMaker, users, logger))
			r.Get("/products", productlist.New(logger, productService).ServeHTTP)
			r.Get("/products/{id}", productread.New(logger, productService).ServeHTTP)
			r.Get("/products/sku/{sku}", productread.New(logger, productService).BySKU)
			r.Get("/stock", stocklist.New(logger, stockService).ServeHTTP)
			r.Get("/stock/{product_id}", stockread.New(logger, stockService).ServeHTTP)
		})

		// Группа с JWT аутентификацией: активные пользователи
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.Authenticate(jwtMaker, users, logger))
			r.Use(middlewarectx.RequireActive(logger))

			r.Get("/users/me", userme.New(logger).ServeHTTP)
			r.Patch("/users/me", userupdateme.New(logger, userService).ServeHTTP)

			r.Post("/products", productcreate.New(logger, productService).ServeHTTP)
			r.Put("/products/{id}", productupdate.New(logger, productService).ServeHTTP)
			r.Delete("/products/{id}", productremove.New(logger, productService).ServeHTTP)

			r.Put("/stock/{product_id}", stockupsert.New(logger, stockService).ServeHTTP)
			r.Post("/stock/{product_id}/adjust", stockadjust.New(logger, stockService).ServeHTTP)
		})

		// Административные маршруты: только привилегированные
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.Authenticate(jwtMaker, users, logger))
			r.Use(middlewarectx.RequireActive(logger))
			r.Use(middlewarectx.RequireSuperuser(logger))

			r.Get("/users", userlist.New(logger, userService).ServeHTTP)
			r.Get("/users/{id}", userread.New(logger, userService).ServeHTTP)
			r.Patch("/users/{id}/active", usersetactive.New(logger, userService).ServeHTTP)
			r.Patch("/users/{id}/superuser", usersetsuperuser.New(logger, userService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
