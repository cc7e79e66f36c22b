package sender

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adsodigital/inventory-api/internal/lib/smtp"
	"github.com/adsodigital/inventory-api/internal/models"
)

// MockClient реализует интерфейс smtp.Client
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if res := args.Get(0); res != nil {
		return res.(io.WriteCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockTransport реализует интерфейс smtp.TransportInterface
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if res := args.Get(0); res != nil {
		return res.(smtp.Client), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

// captureWriter собирает тело письма и фиксирует закрытие writer-а
type captureWriter struct {
	data   []byte
	closed bool
}

func (w *captureWriter) Write(p []byte) (int, error) {
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *captureWriter) Close() error {
	w.closed = true
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func marshalJob(t *testing.T, job models.MailJob) []byte {
	t.Helper()
	body, err := json.Marshal(job)
	require.NoError(t, err)
	return body
}

func TestHandleMailJob(t *testing.T) {
	tests := []struct {
		name        string
		job         models.MailJob
		wantSubject string
	}{
		{
			name: "письмо сброса пароля",
			job: models.MailJob{
				Kind:  models.MailKindResetPassword,
				Email: "user@domain.com",
				Token: "reset-token",
			},
			wantSubject: "Restablecer contraseña",
		},
		{
			name: "письмо подтверждения почты",
			job: models.MailJob{
				Kind:  models.MailKindVerifyEmail,
				Email: "user@domain.com",
				Token: "verify-token",
			},
			wantSubject: "Verifica tu correo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &captureWriter{}
			client := new(MockClient)
			client.On("Mail", "mailer@domain.com").Return(nil)
			client.On("Rcpt", tt.job.Email).Return(nil)
			client.On("Data").Return(writer, nil)
			client.On("Quit").Return(nil)

			transport := new(MockTransport)
			transport.On("Connect").Return(client, nil)
			transport.On("GetSMTPUser").Return("mailer@domain.com")

			service := New(transport, testLogger())

			err := service.HandleMailJob(marshalJob(t, tt.job))
			require.NoError(t, err)

			assert.True(t, writer.closed)
			assert.Contains(t, string(writer.data), tt.wantSubject)
			assert.Contains(t, string(writer.data), tt.job.Token)
			assert.Contains(t, string(writer.data), "To: "+tt.job.Email)

			client.AssertExpectations(t)
			transport.AssertExpectations(t)
		})
	}
}

func TestHandleMailJob_InvalidPayload(t *testing.T) {
	transport := new(MockTransport)
	service := New(transport, testLogger())

	err := service.HandleMailJob([]byte("not-json"))
	assert.Error(t, err)
	transport.AssertNotCalled(t, "Connect")
}

func TestHandleMailJob_UnknownKind(t *testing.T) {
	transport := new(MockTransport)
	service := New(transport, testLogger())

	job := models.MailJob{Kind: "newsletter", Email: "user@domain.com"}
	err := service.HandleMailJob(marshalJob(t, job))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mail job kind")
	transport.AssertNotCalled(t, "Connect")
}

func TestHandleMailJob_ConnectFailure(t *testing.T) {
	transport := new(MockTransport)
	transport.On("Connect").Return(nil, assert.AnError)
	service := New(transport, testLogger())

	job := models.MailJob{Kind: models.MailKindVerifyEmail, Email: "user@domain.com", Token: "tok"}
	err := service.HandleMailJob(marshalJob(t, job))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
}
