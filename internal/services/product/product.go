// Package product содержит бизнес-логику каталога товаров с кешированием
// горячих чтений в Redis.
package product

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/adsodigital/inventory-api/internal/models"
)

// Repository определяет методы для работы с товарами в хранилище.
type Repository interface {
	// CreateProduct добавляет новый товар и возвращает его ID.
	CreateProduct(ctx context.Context, product models.Product) (int64, error)
	// GetProduct возвращает товар по ID.
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	// GetProductBySKU возвращает товар по артикулу.
	GetProductBySKU(ctx context.Context, sku string) (*models.Product, error)
	// UpdateProduct обновляет товар по ID.
	UpdateProduct(ctx context.Context, id int64, product models.Product) (int, error)
	// RemoveProduct удаляет товар по ID.
	RemoveProduct(ctx context.Context, id int64) (int, error)
	// ListProducts возвращает страницу товаров.
	ListProducts(ctx context.Context, limit, offset int) ([]*models.Product, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику каталога, включая кеширование.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

func cacheKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

// Create создает новый товар и кеширует его.
func (s *Service) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	id, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info("created new product", slog.Int64("id", id), slog.String("sku", created.SKU))

	if err := s.cache.Set(cacheKey(id), created, time.Hour); err != nil {
		s.log.Warn("failed to cache product", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	return created, nil
}

// Read возвращает товар по ID, сначала проверяя кеш.
func (s *Service) Read(ctx context.Context, id int64) (*models.Product, error) {
	var cached models.Product
	found, err := s.cache.Get(cacheKey(id), &cached)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(id), product, time.Hour); err != nil {
		s.log.Warn("failed to cache product", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	return product, nil
}

// ReadBySKU возвращает товар по артикулу, минуя кеш.
func (s *Service) ReadBySKU(ctx context.Context, sku string) (*models.Product, error) {
	return s.repo.GetProductBySKU(ctx, sku)
}

// Update обновляет товар и инвалидирует кеш.
func (s *Service) Update(ctx context.Context, id int64, product models.Product) (*models.Product, error) {
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	if _, err := s.repo.UpdateProduct(ctx, id, product); err != nil {
		return nil, err
	}
	return s.repo.GetProduct(ctx, id)
}

// Remove удаляет товар по ID и инвалидирует кеш.
// Возвращает количество удалённых записей.
func (s *Service) Remove(ctx context.Context, id int64) (int, error) {
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	return s.repo.RemoveProduct(ctx, id)
}

// List возвращает страницу товаров.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	return s.repo.ListProducts(ctx, limit, offset)
}
