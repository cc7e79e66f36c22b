// Package models содержит доменные модели системы: учетные записи
// пользователей, товары каталога и складские остатки.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
//
// PasswordHash никогда не сериализуется наружу. Деактивация — мягкое
// удаление: запись остаётся в базе с is_active = false.
type User struct {
	ID            int64      `json:"id"`             // Уникальный идентификатор, назначается базой
	Email         string     `json:"email"`          // Электронная почта (уникальная)
	FullName      *string    `json:"full_name"`      // Отображаемое имя, опционально
	PasswordHash  string     `json:"-"`              // Хэш пароля пользователя
	IsActive      bool       `json:"is_active"`      // Флаг активности учетной записи
	IsSuperuser   bool       `json:"is_superuser"`   // Флаг привилегированного пользователя
	EmailVerified bool       `json:"email_verified"` // Подтверждена ли почта
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// UserUpdate описывает изменяемые поля пользователя.
// Нулевой указатель означает «поле не меняется».
type UserUpdate struct {
	FullName *string
	Password *string
}
