package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/adsodigital/inventory-api/internal/models"
)

// MailPublisher публикует почтовые задания в exchange почтового воркера.
type MailPublisher struct {
	ch *amqp.Channel
}

// NewMailPublisher создает новый MailPublisher поверх открытого канала.
func NewMailPublisher(ch *amqp.Channel) *MailPublisher {
	return &MailPublisher{ch: ch}
}

// PublishMailJob сериализует задание и отправляет его в очередь.
func (p *MailPublisher) PublishMailJob(job models.MailJob) error {
	return PublishMessage(p.ch, MailExchange, "mail", job)
}
