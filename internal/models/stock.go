package models

import "time"

// Stock представляет складской остаток товара.
//
// Quantity не может быть отрицательным: корректировка вниз ограничивается нулём.
type Stock struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}
