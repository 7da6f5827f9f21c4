package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Publisher публикует изменения записей в Kafka.
// Ключ сообщения - ID салона, чтобы события одного салона шли по порядку в одной партиции
type Publisher struct {
	writer  MessageWriter
	timeout time.Duration
	now     func() time.Time
}

// NewKafkaWriter создает writer с hash-балансировкой по ключу
func NewKafkaWriter(brokers []string, topic string, timeout time.Duration) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: timeout,
		RequiredAcks: kafka.RequireOne,
	}
}

// NewPublisher создает publisher поверх writer
func NewPublisher(writer MessageWriter, timeout time.Duration) *Publisher {
	return &Publisher{writer: writer, timeout: timeout, now: time.Now}
}

// PublishAppointment отправляет событие, соответствующее текущему статусу записи
func (p *Publisher) PublishAppointment(ctx context.Context, apt *domain.Appointment) error {
	event := AppointmentEvent{
		EventID:    uuid.New(),
		EventType:  eventTypeFor(apt.Status),
		OccurredAt: p.now().UTC(),
		Data:       stateOf(apt),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: encode %s: %w", event.EventType, err)
	}

	msg := kafka.Message{
		Key:   []byte(apt.SalonID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID.String())},
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events: publish %s for appointment %s: %w", event.EventType, apt.ID, err)
	}
	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NopPublisher используется, когда Kafka выключена
type NopPublisher struct{}

func (NopPublisher) PublishAppointment(ctx context.Context, apt *domain.Appointment) error {
	return nil
}
