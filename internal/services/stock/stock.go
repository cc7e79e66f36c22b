// Package stock содержит бизнес-логику учёта складских остатков.
package stock

import (
	"context"
	"log/slog"

	"github.com/adsodigital/inventory-api/internal/models"
)

// Repository определяет методы для работы с остатками и товарами.
type Repository interface {
	GetStockByProduct(ctx context.Context, productID int64) (*models.Stock, error)
	UpsertStock(ctx context.Context, productID int64, quantity int) (*models.Stock, error)
	AdjustStock(ctx context.Context, productID int64, delta int) (*models.Stock, error)
	ListStock(ctx context.Context, limit, offset int) ([]*models.Stock, error)
	// GetProduct нужен для проверки существования товара перед записью остатка.
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

// Service реализует операции над складскими остатками.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Get возвращает остаток товара.
func (s *Service) Get(ctx context.Context, productID int64) (*models.Stock, error) {
	return s.repo.GetStockByProduct(ctx, productID)
}

// CreateOrUpdate устанавливает остаток товара. Товар должен существовать.
func (s *Service) CreateOrUpdate(ctx context.Context, productID int64, quantity int) (*models.Stock, error) {
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	st, err := s.repo.UpsertStock(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}
	s.log.Info("stock set", slog.Int64("product_id", productID), slog.Int("quantity", st.Quantity))
	return st, nil
}

// Adjust изменяет остаток на delta. Остаток не опускается ниже нуля.
func (s *Service) Adjust(ctx context.Context, productID int64, delta int) (*models.Stock, error) {
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	st, err := s.repo.AdjustStock(ctx, productID, delta)
	if err != nil {
		return nil, err
	}
	s.log.Info("stock adjusted", slog.Int64("product_id", productID),
		slog.Int("delta", delta), slog.Int("quantity", st.Quantity))
	return st, nil
}

// List возвращает страницу остатков.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Stock, error) {
	return s.repo.ListStock(ctx, limit, offset)
}
