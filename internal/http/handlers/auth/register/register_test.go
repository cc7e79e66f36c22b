package register

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/adsodigital/inventory-api/internal/models"
	"github.com/adsodigital/inventory-api/internal/storage/repository"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, email string, fullName *string, rawPassword string) (*models.User, error) {
	args := m.Called(ctx, email, fullName, rawPassword)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"email":"user@domain.com","full_name":"Test User","password":"secret123"}`,
			setupMock: func(m *MockService) {
				user := &models.User{ID: 1, Email: "user@domain.com", IsActive: true}
				m.On("Register", mock.Anything, "user@domain.com", mock.Anything, "secret123").
					Return(user, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"email":"user@domain.com"`,
		},
		{
			name:           "битый JSON",
			body:           `{"email":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "email не указан",
			body:           `{"password":"secret123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Email is a required field",
		},
		{
			name:           "некорректный email",
			body:           `{"email":"not-an-email","password":"secret123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Email must be a valid email address",
		},
		{
			name:           "слишком короткий пароль",
			body:           `{"email":"user@domain.com","password":"123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Password is too short",
		},
		{
			name: "повторный email",
			body: `{"email":"user@domain.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "user@domain.com", mock.Anything, "secret123").
					Return(nil, fmt.Errorf("storage.CreateUser: %w", repository.ErrDuplicateEmail))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "email already registered",
		},
		{
			name: "ошибка сервиса",
			body: `{"email":"user@domain.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "user@domain.com", mock.Anything, "secret123").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "failed to register user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
