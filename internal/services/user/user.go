// Package user содержит бизнес-логику административных операций
// над учетными записями.
package user

import (
	"context"
	"log/slog"

	"github.com/adsodigital/inventory-api/internal/lib/password"
	"github.com/adsodigital/inventory-api/internal/models"
)

// Repository описывает методы хранилища, нужные сервису пользователей.
type Repository interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, fullName, passwordHash *string) error
	SetUserActive(ctx context.Context, id int64, active bool) error
	SetUserSuperuser(ctx context.Context, id int64, superuser bool) error
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
}

// Service реализует операции чтения и администрирования пользователей.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Get возвращает пользователя по идентификатору.
func (s *Service) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// List возвращает страницу пользователей.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.repo.ListUsers(ctx, limit, offset)
}

// Update меняет изменяемые поля пользователя. Новый пароль хэшируется
// перед записью, прочие поля передаются как есть.
func (s *Service) Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	var passwordHash *string
	if upd.Password != nil {
		hashed, err := password.GetHash(*upd.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = &hashed
	}
	if err := s.repo.UpdateUser(ctx, id, upd.FullName, passwordHash); err != nil {
		return nil, err
	}
	return s.repo.GetUserByID(ctx, id)
}

// SetActive включает или выключает учетную запись. Выключение — мягкое
// удаление: запись сохраняется, но перестаёт проходить проверку активности.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	if err := s.repo.SetUserActive(ctx, id, active); err != nil {
		return err
	}
	s.log.Info("user active flag changed", slog.Int64("id", id), slog.Bool("active", active))
	return nil
}

// SetSuperuser выдаёт или отзывает привилегированный флаг.
func (s *Service) SetSuperuser(ctx context.Context, id int64, superuser bool) error {
	if err := s.repo.SetUserSuperuser(ctx, id, superuser); err != nil {
		return err
	}
	s.log.Info("user superuser flag changed", slog.Int64("id", id), slog.Bool("superuser", superuser))
	return nil
}
