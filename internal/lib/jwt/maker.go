// Package jwt реализует выпуск и парсинг JWT токенов с типовым claim полем.
//
// Все токены подписываются одним секретом и алгоритмом HS256, но различаются
// claim "type": access и refresh несут числовой идентификатор пользователя
// в поле sub, reset_password и verify_email — адрес электронной почты.
//
// ParseToken проверяет подпись и срок действия, ParseTyped дополнительно
// сверяет тип токена с ожидаемым: токен сброса пароля никогда не будет
// принят там, где ожидается access-токен.
package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType перечисляет допустимые значения claim "type".
type TokenType string

const (
	// TokenAccess — короткоживущий токен для вызовов API.
	TokenAccess TokenType = "access"
	// TokenRefresh — долгоживущий токен для обновления access-токена.
	TokenRefresh TokenType = "refresh"
	// TokenResetPassword — токен сброса пароля, sub содержит email.
	TokenResetPassword TokenType = "reset_password"
	// TokenVerifyEmail — токен подтверждения почты, sub содержит email.
	TokenVerifyEmail TokenType = "verify_email"
)

// Claims описывает полезную нагрузку токена.
//
// Для access-токенов в момент выпуска добавляются снимки полей пользователя.
// Эти claims информационные: актуальные значения всегда перечитываются
// из хранилища при проверке запроса.
type Claims struct {
	TokenType            TokenType `json:"type"`
	Email                string    `json:"email,omitempty"`
	IsActive             bool      `json:"is_active,omitempty"`
	IsSuperuser          bool      `json:"is_superuser,omitempty"`
	jwt.RegisteredClaims           // Стандартные claims (Subject, ExpiresAt, IssuedAt)
}

// UserID возвращает sub как числовой идентификатор пользователя.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("jwt: malformed subject %q: %w", c.Subject, err)
	}
	return id, nil
}

// TTL задает время жизни для каждого типа токена.
type TTL struct {
	Access  time.Duration
	Refresh time.Duration
	Reset   time.Duration
	Verify  time.Duration
}

// Maker описывает контракт выпуска и проверки токенов.
type Maker interface {
	GenerateAccessToken(userID int64, email string, isActive, isSuperuser bool) (string, error)
	GenerateRefreshToken(userID int64) (string, error)
	GenerateResetToken(email string) (string, error)
	GenerateVerifyToken(email string) (string, error)
	ParseToken(tokenStr string) (*Claims, error)
	ParseTyped(tokenStr string, want TokenType) (*Claims, error)
}

// MakerImpl реализация Maker на симметричном секрете процесса.
type MakerImpl struct {
	secretKey string
	ttl       TTL
}

// NewMaker создает Maker с заданным секретом и временами жизни токенов.
func NewMaker(secretKey string, ttl TTL) *MakerImpl {
	return &MakerImpl{secretKey: secretKey, ttl: ttl}
}

func (j *MakerImpl) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func newClaims(subject string, tokenType TokenType, ttl time.Duration) Claims {
	now := time.Now()
	return Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// GenerateAccessToken выпускает access-токен для пользователя.
//
// В claims помещается снимок email и флагов на момент выпуска.
func (j *MakerImpl) GenerateAccessToken(userID int64, email string, isActive, isSuperuser bool) (string, error) {
	claims := newClaims(strconv.FormatInt(userID, 10), TokenAccess, j.ttl.Access)
	claims.Email = email
	claims.IsActive = isActive
	claims.IsSuperuser = isSuperuser
	return j.sign(claims)
}

// GenerateRefreshToken выпускает refresh-токен для пользователя.
func (j *MakerImpl) GenerateRefreshToken(userID int64) (string, error) {
	return j.sign(newClaims(strconv.FormatInt(userID, 10), TokenRefresh, j.ttl.Refresh))
}

// GenerateResetToken выпускает токен сброса пароля для адреса почты.
func (j *MakerImpl) GenerateResetToken(email string) (string, error) {
	return j.sign(newClaims(email, TokenResetPassword, j.ttl.Reset))
}

// GenerateVerifyToken выпускает токен подтверждения адреса почты.
func (j *MakerImpl) GenerateVerifyToken(email string) (string, error) {
	return j.sign(newClaims(email, TokenVerifyEmail, j.ttl.Verify))
}

// ParseToken парсит токен, проверяет подпись и срок действия.
//
// Битая кодировка, чужая подпись и истёкший срок возвращаются одной
// ошибкой: вызывающая сторона не должна различать причины отказа.
func (j *MakerImpl) ParseToken(tokenStr string) (*Claims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}

// ParseTyped парсит токен и сверяет claim "type" с ожидаемым.
func (j *MakerImpl) ParseTyped(tokenStr string, want TokenType) (*Claims, error) {
	const op = "jwt.ParseTyped"
	claims, err := j.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != want {
		return nil, fmt.Errorf("%s: unexpected token type %q", op, claims.TokenType)
	}
	return claims, nil
}
