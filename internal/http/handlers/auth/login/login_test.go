package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/adsodigital/inventory-api/internal/models"
	authservice "github.com/adsodigital/inventory-api/internal/services/auth"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, email, rawPassword string) (*authservice.TokenPair, *models.User, error) {
	args := m.Called(ctx, email, rawPassword)
	var tokens *authservice.TokenPair
	if res := args.Get(0); res != nil {
		tokens = res.(*authservice.TokenPair)
	}
	var user *models.User
	if res := args.Get(1); res != nil {
		user = res.(*models.User)
	}
	return tokens, user, args.Error(2)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный вход",
			body: `{"email":"user@domain.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				tokens := &authservice.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}
				user := &models.User{ID: 1, Email: "user@domain.com", IsActive: true}
				m.On("Login", mock.Anything, "user@domain.com", "secret123").
					Return(tokens, user, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"access_token":"access-token"`,
		},
		{
			name:           "битый JSON",
			body:           `{"email":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "пароль не указан",
			body:           `{"email":"user@domain.com"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Password is a required field",
		},
		{
			name: "неверные учетные данные",
			body: `{"email":"user@domain.com","password":"wrongpass"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "user@domain.com", "wrongpass").
					Return(nil, nil, authservice.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "invalid credentials",
		},
		{
			name: "ошибка сервиса",
			body: `{"email":"user@domain.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "user@domain.com", "secret123").
					Return(nil, nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "internal service error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
