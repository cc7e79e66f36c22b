package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_UpsertStock(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	productID := factory.CreateProduct(t, "Widget", UniqueSKU(), 49.90)

	t.Run("creates stock record", func(t *testing.T) {
		got, err := storage.UpsertStock(context.Background(), productID, 15)
		require.NoError(t, err)
		assert.Equal(t, productID, got.ProductID)
		assert.Equal(t, 15, got.Quantity)
		verify.VerifyStockQuantity(t, productID, 15)
	})

	t.Run("overwrites existing quantity", func(t *testing.T) {
		got, err := storage.UpsertStock(context.Background(), productID, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Quantity)
		verify.VerifyStockQuantity(t, productID, 3)
	})

	t.Run("unknown product violates foreign key", func(t *testing.T) {
		_, err := storage.UpsertStock(context.Background(), productID+1000, 5)
		require.Error(t, err)
	})
}

func TestStorage_AdjustStock(t *testing.T) {
	tests := []struct {
		name         string
		initial      *int
		delta        int
		wantQuantity int
	}{
		{
			name:         "increase existing stock",
			initial:      intPtr(10),
			delta:        5,
			wantQuantity: 15,
		},
		{
			name:         "decrease existing stock",
			initial:      intPtr(10),
			delta:        -4,
			wantQuantity: 6,
		},
		{
			name:         "decrease below zero clamps at zero",
			initial:      intPtr(3),
			delta:        -100,
			wantQuantity: 0,
		},
		{
			name:         "adjust without existing record creates it",
			initial:      nil,
			delta:        7,
			wantQuantity: 7,
		},
		{
			name:         "negative adjust without existing record clamps at zero",
			initial:      nil,
			delta:        -7,
			wantQuantity: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			productID := factory.CreateProduct(t, "Widget", UniqueSKU(), 49.90)
			if tt.initial != nil {
				factory.CreateStock(t, productID, *tt.initial)
			}

			got, err := storage.AdjustStock(context.Background(), productID, tt.delta)

			require.NoError(t, err)
			assert.Equal(t, productID, got.ProductID)
			assert.Equal(t, tt.wantQuantity, got.Quantity)
			NewTestVerification(storage).VerifyStockQuantity(t, productID, tt.wantQuantity)
		})
	}
}

func TestStorage_GetStockByProduct(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	productID := factory.CreateProduct(t, "Widget", UniqueSKU(), 49.90)
	factory.CreateStock(t, productID, 12)

	t.Run("existing stock", func(t *testing.T) {
		got, err := storage.GetStockByProduct(context.Background(), productID)
		require.NoError(t, err)
		assert.Equal(t, productID, got.ProductID)
		assert.Equal(t, 12, got.Quantity)
	})

	t.Run("product without stock", func(t *testing.T) {
		otherID := factory.CreateProduct(t, "Gadget", UniqueSKU(), 19.90)
		_, err := storage.GetStockByProduct(context.Background(), otherID)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStorage_ListStock(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	firstProduct := factory.CreateProduct(t, "Widget", UniqueSKU(), 49.90)
	secondProduct := factory.CreateProduct(t, "Gadget", UniqueSKU(), 19.90)
	factory.CreateStock(t, firstProduct, 5)
	factory.CreateStock(t, secondProduct, 8)

	t.Run("returns stock ordered by id", func(t *testing.T) {
		got, err := storage.ListStock(context.Background(), 10, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, firstProduct, got[0].ProductID)
		assert.Equal(t, 5, got[0].Quantity)
		assert.Equal(t, secondProduct, got[1].ProductID)
		assert.Equal(t, 8, got[1].Quantity)
	})

	t.Run("respects limit", func(t *testing.T) {
		got, err := storage.ListStock(context.Background(), 1, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, firstProduct, got[0].ProductID)
	})
}

func intPtr(v int) *int { return &v }
