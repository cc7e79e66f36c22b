// Package auth содержит бизнес-логику регистрации, входа, обновления
// токенов и восстановления доступа.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/adsodigital/inventory-api/internal/lib/jwt"
	"github.com/adsodigital/inventory-api/internal/lib/password"
	"github.com/adsodigital/inventory-api/internal/lib/sl"
	"github.com/adsodigital/inventory-api/internal/models"
	"github.com/adsodigital/inventory-api/internal/storage/repository"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
// Неизвестный email и неверный пароль неразличимы снаружи.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInactiveUser возвращается при попытке обновить токен деактивированной
// учетной записи.
var ErrInactiveUser = errors.New("inactive user")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	MarkEmailVerified(ctx context.Context, email string) error
	UpdateUserPasswordByEmail(ctx context.Context, email, passwordHash string) error
}

// MailPublisher публикует почтовое задание в очередь воркера.
type MailPublisher interface {
	PublishMailJob(job models.MailJob) error
}

// TokenPair — access и refresh токены, выдаваемые при входе.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Service отвечает за регистрацию, авторизацию и восстановление доступа.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	mail     MailPublisher
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker, mail MailPublisher, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		mail:     mail,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля.
//
// Письмо с токеном подтверждения почты ставится в очередь по возможности:
// сбой публикации регистрацию не отменяет.
func (s *Service) Register(ctx context.Context, email string, fullName *string, rawPassword string) (*models.User, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hashed,
		IsActive:     true, // дефолт при регистрации
		IsSuperuser:  false,
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	if token, tokErr := s.jwtMaker.GenerateVerifyToken(email); tokErr == nil {
		if pubErr := s.mail.PublishMailJob(models.MailJob{
			Kind:  models.MailKindVerifyEmail,
			Email: email,
			Token: token,
		}); pubErr != nil {
			s.log.Warn("failed to enqueue verification mail", sl.Err(pubErr))
		}
	}

	return s.users.GetUserByID(ctx, id)
}

// Login проверяет пароль пользователя и выдает пару access/refresh токенов.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*TokenPair, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	access, err := s.jwtMaker.GenerateAccessToken(user.ID, user.Email, user.IsActive, user.IsSuperuser)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.jwtMaker.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, user, nil
}

// Refresh выдает новый access-токен по действительному refresh-токену.
//
// Пользователь перечитывается из хранилища: деактивированная учетная
// запись не может обновить токен, даже если refresh ещё не истёк.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	const op = "auth.Refresh"
	claims, err := s.jwtMaker.ParseTyped(refreshToken, jwt.TokenRefresh)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	id, err := claims.UserID()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !user.IsActive {
		return "", fmt.Errorf("%s: %w", op, ErrInactiveUser)
	}
	return s.jwtMaker.GenerateAccessToken(user.ID, user.Email, user.IsActive, user.IsSuperuser)
}

// RequestPasswordReset ставит в очередь письмо с токеном сброса пароля.
//
// Для неизвестного email метод завершается успешно без публикации:
// ответ не раскрывает, зарегистрирован ли адрес.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	token, err := s.jwtMaker.GenerateResetToken(email)
	if err != nil {
		return err
	}
	return s.mail.PublishMailJob(models.MailJob{
		Kind:  models.MailKindResetPassword,
		Email: email,
		Token: token,
	})
}

// ResetPassword устанавливает новый пароль по токену сброса.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	const op = "auth.ResetPassword"
	claims, err := s.jwtMaker.ParseTyped(token, jwt.TokenResetPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.users.UpdateUserPasswordByEmail(ctx, claims.Subject, hashed)
}

// RequestEmailVerification ставит в очередь письмо подтверждения почты.
// Неизвестный email не раскрывается, как и в RequestPasswordReset.
func (s *Service) RequestEmailVerification(ctx context.Context, email string) error {
	_, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	token, err := s.jwtMaker.GenerateVerifyToken(email)
	if err != nil {
		return err
	}
	return s.mail.PublishMailJob(models.MailJob{
		Kind:  models.MailKindVerifyEmail,
		Email: email,
		Token: token,
	})
}

// VerifyEmail отмечает почту подтверждённой по токену подтверждения.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	const op = "auth.VerifyEmail"
	claims, err := s.jwtMaker.ParseTyped(token, jwt.TokenVerifyEmail)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.users.MarkEmailVerified(ctx, claims.Subject)
}
