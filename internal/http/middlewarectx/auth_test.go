package middlewarectx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adsodigital/inventory-api/internal/lib/jwt"
	"github.com/adsodigital/inventory-api/internal/models"
	"github.com/adsodigital/inventory-api/internal/storage/repository"
)

// MockUserProvider реализует интерфейс middlewarectx.UserProvider
type MockUserProvider struct {
	mock.Mock
}

func (m *MockUserProvider) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func testMaker() jwt.Maker {
	return jwt.NewMaker("test_secret_key", jwt.TTL{
		Access:  15 * time.Minute,
		Refresh: time.Hour,
		Reset:   15 * time.Minute,
		Verify:  time.Hour,
	})
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func okHandler(t *testing.T, wantUser bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := UserFromContext(r.Context())
		assert.Equal(t, wantUser, ok)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	maker := testMaker()
	logger := testLogger()

	activeUser := &models.User{ID: 42, Email: "user@domain.com", IsActive: true}

	validToken, err := maker.GenerateAccessToken(42, "user@domain.com", true, false)
	require.NoError(t, err)
	refreshToken, err := maker.GenerateRefreshToken(42)
	require.NoError(t, err)
	resetToken, err := maker.GenerateResetToken("user@domain.com")
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*MockUserProvider)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:       "валидный access-токен",
			authHeader: "Bearer " + validToken,
			setupMock: func(m *MockUserProvider) {
				m.On("GetUserByID", mock.Anything, int64(42)).Return(activeUser, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "заголовок отсутствует",
			authHeader:     "",
			setupMock:      func(_ *MockUserProvider) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "missing or invalid authorization header",
		},
		{
			name:           "заголовок без схемы Bearer",
			authHeader:     validToken,
			setupMock:      func(_ *MockUserProvider) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "missing or invalid authorization header",
		},
		{
			name:           "мусор вместо токена",
			authHeader:     "Bearer not.a.token",
			setupMock:      func(_ *MockUserProvider) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "invalid or expired token",
		},
		{
			name:           "refresh-токен на access-пути",
			authHeader:     "Bearer " + refreshToken,
			setupMock:      func(_ *MockUserProvider) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "invalid or expired token",
		},
		{
			name:           "reset-токен на access-пути",
			authHeader:     "Bearer " + resetToken,
			setupMock:      func(_ *MockUserProvider) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "invalid or expired token",
		},
		{
			name:       "пользователь удалён из базы",
			authHeader: "Bearer " + validToken,
			setupMock: func(m *MockUserProvider) {
				m.On("GetUserByID", mock.Anything, int64(42)).
					Return(nil, fmt.Errorf("storage.GetUserByID: %w", repository.ErrNotFound))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "user not found",
		},
		{
			name:       "ошибка хранилища",
			authHeader: "Bearer " + validToken,
			setupMock: func(m *MockUserProvider) {
				m.On("GetUserByID", mock.Anything, int64(42)).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "internal service error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserProvider)
			tt.setupMock(mockUsers)

			handler := Authenticate(maker, mockUsers, logger)(okHandler(t, tt.expectedStatus == http.StatusOK))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
					"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			}
			mockUsers.AssertExpectations(t)
		})
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	expiredMaker := jwt.NewMaker("test_secret_key", jwt.TTL{Access: -time.Hour})
	token, err := expiredMaker.GenerateAccessToken(42, "user@domain.com", true, false)
	require.NoError(t, err)

	mockUsers := new(MockUserProvider)
	handler := Authenticate(testMaker(), mockUsers, testLogger())(okHandler(t, false))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
	mockUsers.AssertExpectations(t)
}

func TestAuthenticateOptional(t *testing.T) {
	maker := testMaker()
	logger := testLogger()

	activeUser := &models.User{ID: 42, Email: "user@domain.com", IsActive: true}
	validToken, err := maker.GenerateAccessToken(42, "user@domain.com", true, false)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		setupMock  func(*MockUserProvider)
		wantUser   bool
	}{
		{
			name:       "валидный токен кладет пользователя в контекст",
			authHeader: "Bearer " + validToken,
			setupMock: func(m *MockUserProvider) {
				m.On("GetUserByID", mock.Anything, int64(42)).Return(activeUser, nil)
			},
			wantUser: true,
		},
		{
			name:       "без заголовка запрос анонимный",
			authHeader: "",
			setupMock:  func(_ *MockUserProvider) {},
			wantUser:   false,
		},
		{
			name:       "битый токен не отклоняет запрос",
			authHeader: "Bearer not.a.token",
			setupMock:  func(_ *MockUserProvider) {},
			wantUser:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserProvider)
			tt.setupMock(mockUsers)

			handler := AuthenticateOptional(maker, mockUsers, logger)(okHandler(t, tt.wantUser))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			mockUsers.AssertExpectations(t)
		})
	}
}
