package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LoyaltyCreditEvent событие начисления баллов лояльности.
// Публикуется при завершении записи, потребляется сервисом нотификаций.
type LoyaltyCreditEvent struct {
	AppointmentID int64     `json:"appointment_id"`
	CustomerID    int64     `json:"customer_id"`
	Points        int       `json:"points"`
	Description   string    `json:"description"`
	CompletedAt   time.Time `json:"completed_at"`
}

// Publisher публикует доменные события в RabbitMQ.
// Соединение и канал держатся открытыми на все время жизни сервиса.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// NewPublisher подключается к брокеру и объявляет очередь.
// Очередь durable: сообщения переживают перезапуск брокера.
func NewPublisher(url, queueName string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrConnect, url, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if _, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("%w: declare queue %s: %v", ErrConnect, queueName, err)
	}

	return &Publisher{conn: conn, channel: ch, queue: queueName}, nil
}

// PublishLoyaltyCredit публикует событие начисления баллов.
// Сообщение помечается persistent и уходит в default exchange
// с routing key равным имени очереди.
func (p *Publisher) PublishLoyaltyCredit(ctx context.Context, event LoyaltyCreditEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.channel.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		return fmt.Errorf("%w: publish to %s: %v", ErrPublish, p.queue, err)
	}

	return nil
}

// Close закрывает канал и соединение с брокером
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
