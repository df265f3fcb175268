package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/archoffice/bff-admin/config"
	"github.com/archoffice/bff-admin/internal/dto"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func CreateKafkaWriter(config *config.Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(config.KafkaConfig.BrokerAddress, ",")...),
		Topic:                  config.QueueName,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

// EmailProducer publishes send-email events for the email worker.
type EmailProducer struct {
	writer MessageWriter
	logger zerolog.Logger
}

func CreateEmailProducer(writer MessageWriter, logger zerolog.Logger) *EmailProducer {
	return &EmailProducer{writer: writer, logger: logger}
}

func (p *EmailProducer) Send(ctx context.Context, event dto.SendEmailEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal email event: %w", err)
	}

	eventID := ulid.Make().String()
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("send_email")},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write email event %s: %w", eventID, err)
	}

	p.logger.Info().Str("component", "EmailProducer").Str("event_id", eventID).Str("template", event.TemplateName).Msg("email event published")

	return nil
}

func (p *EmailProducer) Close() error {
	return p.writer.Close()
}
