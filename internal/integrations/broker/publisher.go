// Package broker канал доставки сработавших уведомлений в RabbitMQ (topic exchange).
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

// DefaultRoutingKey используется для уведомлений без категории
const DefaultRoutingKey = "default"

// Publisher публикует сработавшие уведомления в exchange
type Publisher struct {
	conn        *amqp.Connection
	openChannel func() (Channel, error)
	exchange    string
	prefix      string
	logger      Logger
	now         func() time.Time
}

// NewPublisher подключается к брокеру и объявляет topic exchange.
// Ключ маршрутизации: <prefix>.<category_identifier>.
func NewPublisher(url, exchange, prefix string, logger Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	p := &Publisher{
		conn:     conn,
		exchange: exchange,
		prefix:   prefix,
		logger:   logger,
		now:      time.Now,
	}
	p.openChannel = func() (Channel, error) {
		ch, err := conn.Channel()
		if err != nil {
			return nil, err
		}
		return amqpChannel{ch}, nil
	}

	return p, nil
}

// amqpChannel адаптирует *amqp.Channel к Channel
type amqpChannel struct {
	*amqp.Channel
}

func (c amqpChannel) PublishWithConfirm(ctx context.Context, exchange, key string, msg amqp.Publishing) (Confirmation, error) {
	confirmation, err := c.PublishWithDeferredConfirmWithContext(ctx, exchange, key, false, false, msg)
	if err != nil {
		return nil, err
	}
	return confirmation, nil
}

// Deliver публикует уведомление и дожидается подтверждения брокера
func (p *Publisher) Deliver(ctx context.Context, request domain.Request) error {
	ch, err := p.openChannel()
	if err != nil {
		return fmt.Errorf("%w: open channel: %v", ErrPublish, err)
	}
	defer ch.Close()

	if err := ch.Confirm(false); err != nil {
		return fmt.Errorf("%w: confirm mode: %v", ErrPublish, err)
	}

	firedAt := p.now()
	envelope := Envelope{
		Meta: Meta{
			ID:            uuid.NewString(),
			Type:          EventNotificationFired,
			OccurredAt:    firedAt,
			CorrelationID: request.Identifier,
		},
		Data: domain.NewFiredNotification(request, firedAt),
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, request.Identifier, err)
	}

	key := p.routingKey(request.Content.CategoryIdentifier)
	confirmation, err := ch.PublishWithConfirm(ctx, p.exchange, key, amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     envelope.Meta.ID,
		CorrelationId: envelope.Meta.CorrelationID,
		Timestamp:     firedAt,
		Type:          EventNotificationFired,
		Body:          body,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, request.Identifier, err)
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotConfirmed, request.Identifier, err)
	}
	if !acked {
		return fmt.Errorf("%w: %s: nack", ErrNotConfirmed, request.Identifier)
	}

	p.logger.Info("Published notification %s to %s with key %s", request.Identifier, p.exchange, key)
	return nil
}

// Close закрывает соединение с брокером
func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

func (p *Publisher) routingKey(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultRoutingKey
	}
	if p.prefix == "" {
		return category
	}
	return p.prefix + "." + category
}
