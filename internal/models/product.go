package models

import "time"

// Product представляет товар каталога.
type Product struct {
	ID          int64     `json:"id"`          // Уникальный идентификатор товара
	Name        string    `json:"name"`        // Наименование
	Description *string   `json:"description"` // Описание, опционально
	SKU         string    `json:"sku"`         // Артикул (уникальный)
	Price       float64   `json:"price"`       // Цена
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
