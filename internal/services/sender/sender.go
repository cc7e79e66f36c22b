// Package sender реализует доставку писем восстановления доступа.
// Сервис потребляет задания из очереди и отправляет их по SMTP.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/adsodigital/inventory-api/internal/lib/sl"
	"github.com/adsodigital/inventory-api/internal/lib/smtp"
	"github.com/adsodigital/inventory-api/internal/models"
)

// Service отправляет письма почтовых заданий через SMTP транспорт.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(transport smtp.TransportInterface, log *slog.Logger) *Service {
	return &Service{transport: transport, log: log}
}

// HandleMailJob обрабатывает сообщение очереди почтовых заданий.
func (s *Service) HandleMailJob(body []byte) error {
	var job models.MailJob
	if err := json.Unmarshal(body, &job); err != nil {
		s.log.Error("failed to unmarshal mail job", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	var subject, bodyText string
	switch job.Kind {
	case models.MailKindResetPassword:
		subject = "Restablecer contraseña — Inventory API"
		bodyText = fmt.Sprintf("Hola,\n\nPara restablecer tu contraseña usa el siguiente token:\n\n%s\n\nSi no solicitaste este cambio, ignora este mensaje.", job.Token)
	case models.MailKindVerifyEmail:
		subject = "Verifica tu correo — Inventory API"
		bodyText = fmt.Sprintf("Hola,\n\nPara verificar tu correo usa el siguiente token:\n\n%s", job.Token)
	default:
		return fmt.Errorf("unknown mail job kind: %q", job.Kind)
	}

	return s.sendEmail([]string{job.Email}, subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	client, err := s.transport.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP: %w", err)
	}
	defer func() {
		if quitErr := client.Quit(); quitErr != nil {
			s.log.Error("failed to quit SMTP session", sl.Err(quitErr))
		}
	}()

	from := s.transport.GetSMTPUser()
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		from, strings.Join(to, ", "), subject, bodyText)
	if _, err = w.Write([]byte(msg)); err != nil {
		if closeErr := w.Close(); closeErr != nil {
			s.log.Error("failed to close data writer", sl.Err(closeErr))
		}
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	s.log.Info("mail sent", slog.String("to", strings.Join(to, ", ")), slog.String("subject", subject))
	return nil
}
