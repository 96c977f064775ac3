package stream

import (
	"context"
	"errors"

	"datacleaner/internal/cleaning/service"
	apperrors "datacleaner/pkg/errors"
	"datacleaner/pkg/kafka"
	"datacleaner/pkg/logger"
	"datacleaner/pkg/model"
)

const (
	EventTypeRecordCleaned = "record.cleaned"
	SchemaVersion          = "1"
	Source                 = "datacleaner"
)

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// Handler cleans raw record messages and publishes the cleaned records.
type Handler struct {
	service   service.CleaningService
	publisher Publisher
	log       *logger.Logger
}

func NewHandler(service service.CleaningService, publisher Publisher, log *logger.Logger) *Handler {
	return &Handler{
		service:   service,
		publisher: publisher,
		log:       log,
	}
}

// Handle is a kafka.MessageHandler. Bad payloads fail permanently, publish
// failures are transient.
func (h *Handler) Handle(ctx context.Context, msg kafka.Message) error {
	var in model.RecordMessage
	if err := msg.DecodeValue(&in); err != nil {
		return kafka.NewPermanentError("failed to decode record message", err).
			WithDetail("offset", msg.Offset).
			WithDetail("partition", msg.Partition)
	}

	out, err := h.service.CleanMessage(ctx, &in)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.CodeValidation {
			return kafka.NewPermanentError("invalid record message", err).WithDetail("details", appErr.Details)
		}
		return kafka.NewTransientError("failed to clean record", err)
	}

	cleaned, err := kafka.NewMessage().
		WithKey(out.ID).
		WithValue(out).
		WithEventType(EventTypeRecordCleaned).
		WithCorrelationID(msg.GetCorrelationID()).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		Build()
	if err != nil {
		return kafka.NewPermanentError("failed to encode cleaned record", err)
	}

	if err := h.publisher.Publish(ctx, cleaned); err != nil {
		var kafkaErr *kafka.KafkaError
		if errors.As(err, &kafkaErr) {
			return err
		}
		return kafka.NewTransientError("failed to publish cleaned record", err)
	}

	h.log.Debug("Record cleaned",
		"record_id", out.ID,
		"invalid_fields", len(out.InvalidFields),
		"correlation_id", msg.GetCorrelationID(),
	)
	return nil
}
