// Package sender собирает почтовый воркер: подключение к RabbitMQ,
// SMTP-транспорт и обработчик заданий.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/adsodigital/inventory-api/internal/config"
	"github.com/adsodigital/inventory-api/internal/lib/rabbitmq"
	"github.com/adsodigital/inventory-api/internal/lib/smtp"
	senderservice "github.com/adsodigital/inventory-api/internal/services/sender"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	queueName     string
	logger        *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetMailQueues(cfg.MailQueueName)
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		conn.Close()
		return nil, err
	}

	newTransport := smtp.NewTransport(cfg.SMTPConnection, logger)
	senderService := senderservice.New(newTransport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		queueName:     cfg.MailQueueName,
		logger:        logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumeMessages(ctx, a.ch, a.queueName, a.senderService.HandleMailJob)
	if err != nil {
		a.logger.Error("failed to start mail queue consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("mail sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
