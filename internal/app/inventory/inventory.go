// Package inventory собирает HTTP-приложение учёта товаров: хранилище,
// миграции, кеш, очередь почтовых заданий, бизнес-сервисы и сервер.
package inventory

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/adsodigital/inventory-api/internal/cache"
	"github.com/adsodigital/inventory-api/internal/config"
	"github.com/adsodigital/inventory-api/internal/lib/jwt"
	"github.com/adsodigital/inventory-api/internal/lib/rabbitmq"
	"github.com/adsodigital/inventory-api/internal/migrations"
	authservice "github.com/adsodigital/inventory-api/internal/services/auth"
	productservice "github.com/adsodigital/inventory-api/internal/services/product"
	stockservice "github.com/adsodigital/inventory-api/internal/services/stock"
	userservice "github.com/adsodigital/inventory-api/internal/services/user"
	"github.com/adsodigital/inventory-api/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	mqConn *amqp.Connection
	mqCh   *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	queues := rabbitmq.GetMailQueues(cfg.MailQueueName)
	mqCh, err := rabbitmq.SetupChannel(mqConn, queues)
	if err != nil {
		mqConn.Close()
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, jwt.TTL{
		Access:  cfg.AccessTokenTTL,
		Refresh: cfg.RefreshTokenTTL,
		Reset:   cfg.ResetTokenTTL,
		Verify:  cfg.VerifyTokenTTL,
	})

	mailPublisher := rabbitmq.NewMailPublisher(mqCh)

	authService := authservice.New(db, jwtMaker, mailPublisher, logger)
	userService := userservice.New(db, logger)
	productService := productservice.New(db, cacheRedis, logger)
	stockService := stockservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, db,
		authService, userService, productService, stockService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		mqConn: mqConn,
		mqCh:   mqCh,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if chErr := a.mqCh.Close(); chErr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", chErr))
		}
		if connErr := a.mqConn.Close(); connErr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", connErr))
		}
		a.db.DB.Close()
		return err
	}
}
