package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsodigital/inventory-api/internal/models"
)

func TestStorage_CreateProduct(t *testing.T) {
	tests := []struct {
		name    string
		product models.Product
		wantErr error
		setup   func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name:    "successful product creation",
			product: GetTestProductData(),
			wantErr: nil,
			setup:   func(_ *testing.T, _ *TestDataFactory) {},
		},
		{
			name: "duplicate sku returns error",
			product: models.Product{
				Name:  "Another Widget",
				SKU:   "WIDGET-001",
				Price: 10.0,
			},
			wantErr: ErrDuplicateSKU,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateProduct(t, "Widget", "WIDGET-001", 5.0)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			id, err := storage.CreateProduct(context.Background(), tt.product)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Positive(t, id)
			}
		})
	}
}

func TestStorage_GetProduct(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	sku := UniqueSKU()
	id := factory.CreateProduct(t, "Widget", sku, 49.90)

	t.Run("existing product by id", func(t *testing.T) {
		got, err := storage.GetProduct(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "Widget", got.Name)
		assert.Equal(t, sku, got.SKU)
		assert.InDelta(t, 49.90, got.Price, 0.001)
	})

	t.Run("existing product by sku", func(t *testing.T) {
		got, err := storage.GetProductBySKU(context.Background(), sku)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
	})

	t.Run("non-existing id", func(t *testing.T) {
		_, err := storage.GetProduct(context.Background(), id+1000)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown sku", func(t *testing.T) {
		_, err := storage.GetProductBySKU(context.Background(), "NO-SUCH-SKU")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStorage_UpdateProduct(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	id := factory.CreateProduct(t, "Widget", UniqueSKU(), 49.90)
	otherSKU := UniqueSKU()
	factory.CreateProduct(t, "Gadget", otherSKU, 19.90)

	t.Run("replaces all fields", func(t *testing.T) {
		description := "Improved widget"
		newSKU := UniqueSKU()
		affected, err := storage.UpdateProduct(context.Background(), id, models.Product{
			Name:        "Widget v2",
			Description: &description,
			SKU:         newSKU,
			Price:       59.90,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, affected)

		got, err := storage.GetProduct(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Widget v2", got.Name)
		assert.Equal(t, newSKU, got.SKU)
		require.NotNil(t, got.Description)
		assert.Equal(t, "Improved widget", *got.Description)
	})

	t.Run("sku taken by another product", func(t *testing.T) {
		_, err := storage.UpdateProduct(context.Background(), id, models.Product{
			Name:  "Widget v3",
			SKU:   otherSKU,
			Price: 59.90,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateSKU)
	})

	t.Run("non-existing product", func(t *testing.T) {
		affected, err := storage.UpdateProduct(context.Background(), id+1000, models.Product{
			Name:  "Ghost",
			SKU:   UniqueSKU(),
			Price: 1.0,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, affected)
	})
}

func TestStorage_RemoveProduct(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	id := factory.CreateProduct(t, "Widget", UniqueSKU(), 49.90)
	factory.CreateStock(t, id, 10)

	t.Run("removes product and its stock", func(t *testing.T) {
		deleted, err := storage.RemoveProduct(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 1, deleted)
		verify.VerifyProductDeleted(t, id)

		// Каскадное удаление должно убрать и остаток
		_, err = storage.GetStockByProduct(context.Background(), id)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("non-existing product", func(t *testing.T) {
		deleted, err := storage.RemoveProduct(context.Background(), id+1000)
		require.NoError(t, err)
		assert.Equal(t, 0, deleted)
	})
}

func TestStorage_ListProducts(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	first := factory.CreateProduct(t, "Widget", UniqueSKU(), 49.90)
	second := factory.CreateProduct(t, "Gadget", UniqueSKU(), 19.90)
	third := factory.CreateProduct(t, "Gizmo", UniqueSKU(), 9.90)

	t.Run("returns products ordered by id", func(t *testing.T) {
		got, err := storage.ListProducts(context.Background(), 10, 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, first, got[0].ID)
		assert.Equal(t, second, got[1].ID)
		assert.Equal(t, third, got[2].ID)
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		got, err := storage.ListProducts(context.Background(), 2, 1)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, second, got[0].ID)
		assert.Equal(t, third, got[1].ID)
	})
}
