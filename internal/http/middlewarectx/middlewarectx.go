// Package middlewarectx содержит HTTP middleware цепочки авторизации.
//
// Authenticate проверяет bearer-токен в заголовке Authorization, перечитывает
// пользователя из хранилища и помещает его в контекст запроса. RequireActive
// и RequireSuperuser навешиваются поверх и проверяют текущие флаги учетной
// записи — не снимки из токена. AuthenticateOptional выполняет ту же цепочку,
// но любой отказ превращает в анонимный проход.
package middlewarectx

import (
	"context"

	"github.com/adsodigital/inventory-api/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserKey — ключ для разрешённого пользователя в контексте.
	UserKey Key = "user"
)

// ContextWithUser кладет пользователя в контекст запроса.
func ContextWithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, UserKey, u)
}

// UserFromContext возвращает пользователя запроса, если цепочка
// аутентификации его разрешила.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(UserKey).(*models.User)
	return u, ok && u != nil
}

// UserProvider описывает доступ к пользователям для цепочки авторизации.
type UserProvider interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}
