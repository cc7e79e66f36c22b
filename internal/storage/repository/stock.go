package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adsodigital/inventory-api/internal/models"
)

// GetStockByProduct возвращает остаток товара или ErrNotFound.
func (s *Storage) GetStockByProduct(ctx context.Context, productID int64) (*models.Stock, error) {
	const op = "storage.GetStockByProduct"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, product_id, quantity, updated_at
			  FROM stock
			  WHERE product_id = $1`
	st := &models.Stock{}
	if err := s.DB.QueryRowContext(ctx, query, productID).
		Scan(&st.ID, &st.ProductID, &st.Quantity, &st.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}

// UpsertStock устанавливает остаток товара, создавая запись при отсутствии.
func (s *Storage) UpsertStock(ctx context.Context, productID int64, quantity int) (*models.Stock, error) {
	const op = "storage.UpsertStock"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO stock (product_id, quantity)
			  VALUES ($1, $2)
			  ON CONFLICT (product_id)
			  DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()
			  RETURNING id, product_id, quantity, updated_at;`
	st := &models.Stock{}
	if err := s.DB.QueryRowContext(ctx, query, productID, quantity).
		Scan(&st.ID, &st.ProductID, &st.Quantity, &st.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}

// AdjustStock изменяет остаток на delta, не опускаясь ниже нуля.
// При отсутствии записи она создаётся с нулевым остатком и затем корректируется.
func (s *Storage) AdjustStock(ctx context.Context, productID int64, delta int) (*models.Stock, error) {
	const op = "storage.AdjustStock"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO stock (product_id, quantity)
			  VALUES ($1, GREATEST($2, 0))
			  ON CONFLICT (product_id)
			  DO UPDATE SET quantity = GREATEST(stock.quantity + $2, 0), updated_at = now()
			  RETURNING id, product_id, quantity, updated_at;`
	st := &models.Stock{}
	if err := s.DB.QueryRowContext(ctx, query, productID, delta).
		Scan(&st.ID, &st.ProductID, &st.Quantity, &st.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}

// ListStock возвращает страницу остатков в порядке возрастания ID.
func (s *Storage) ListStock(ctx context.Context, limit, offset int) ([]*models.Stock, error) {
	const op = "storage.ListStock"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, product_id, quantity, updated_at
			  FROM stock
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Stock
	for rows.Next() {
		st := &models.Stock{}
		if err = rows.Scan(&st.ID, &st.ProductID, &st.Quantity, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, st)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
