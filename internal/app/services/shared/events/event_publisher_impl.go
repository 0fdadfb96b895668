package events

import (
	"context"
	"encoding/json"
	"ptmd-service/internal/app/contracts"
	"ptmd-service/internal/pkg/constvars"
	"ptmd-service/internal/pkg/exceptions"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type rabbitMQPublisher struct {
	Channel *amqp091.Channel
	Queue   string
}

func NewRabbitMQPublisher(rabbitMQConnection *amqp091.Connection, queue string) (contracts.EventPublisher, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return &rabbitMQPublisher{
		Channel: channel,
		Queue:   queue,
	}, nil
}

type eventEnvelope struct {
	Event      string      `json:"event"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	body, err := json.Marshal(eventEnvelope{
		Event:      eventType,
		OccurredAt: time.Now(),
		Payload:    payload,
	})
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.Queue)
	}

	headers := amqp091.Table{
		"message_type":     "JSON",
		"requeue_strategy": "DROP",
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Priority:     0,
		Headers:      headers,
	}

	err = p.Channel.PublishWithContext(ctx, "", p.Queue, false, false, message)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.Queue)
	}
	return nil
}
