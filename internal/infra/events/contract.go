package events

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageWriter *kafka.Writer
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
