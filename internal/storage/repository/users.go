package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adsodigital/inventory-api/internal/models"
)

const userColumns = `id, email, full_name, password_hash, is_active, is_superuser,
			      email_verified, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	u := &models.User{}
	var fullName sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &fullName, &u.PasswordHash,
		&u.IsActive, &u.IsSuperuser, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if fullName.Valid {
		u.FullName = &fullName.String
	}
	return u, nil
}

// CreateUser сохраняет нового пользователя и возвращает его ID.
// Повторный email возвращает ErrDuplicateEmail.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int64, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO users (email, full_name, password_hash, is_active, is_superuser)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.FullName, user.PasswordHash, user.IsActive,
		user.IsSuperuser).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByID возвращает пользователя по идентификатору или ErrNotFound.
func (s *Storage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.GetUserByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по email или ErrNotFound.
// Email сравнивается так, как сохранён, без нормализации регистра.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateUser обновляет изменяемые поля пользователя. Nil-указатель
// оставляет поле без изменений. Хэширование пароля — забота сервиса.
func (s *Storage) UpdateUser(ctx context.Context, id int64, fullName, passwordHash *string) error {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET full_name = COALESCE($2, full_name),
			      password_hash = COALESCE($3, password_hash),
			      updated_at = now()
			  WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, id, fullName, passwordHash)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// SetUserActive включает или выключает учетную запись (мягкое удаление).
func (s *Storage) SetUserActive(ctx context.Context, id int64, active bool) error {
	const op = "storage.SetUserActive"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_active = $2, updated_at = now()
			  WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// SetUserSuperuser выдаёт или отзывает привилегированный флаг.
func (s *Storage) SetUserSuperuser(ctx context.Context, id int64, superuser bool) error {
	const op = "storage.SetUserSuperuser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_superuser = $2, updated_at = now()
			  WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, id, superuser)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// MarkEmailVerified отмечает почту пользователя как подтверждённую.
func (s *Storage) MarkEmailVerified(ctx context.Context, email string) error {
	const op = "storage.MarkEmailVerified"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET email_verified = true, updated_at = now()
			  WHERE email = $1`
	res, err := s.DB.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// UpdateUserPasswordByEmail заменяет хэш пароля пользователя с данным email.
func (s *Storage) UpdateUserPasswordByEmail(ctx context.Context, email, passwordHash string) error {
	const op = "storage.UpdateUserPasswordByEmail"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_hash = $2, updated_at = now()
			  WHERE email = $1`
	res, err := s.DB.ExecContext(ctx, query, email, passwordHash)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// ListUsers возвращает страницу пользователей в порядке возрастания ID.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
