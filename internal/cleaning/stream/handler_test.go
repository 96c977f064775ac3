package stream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"datacleaner/internal/cleaning/service"
	"datacleaner/internal/cleaning/validator"
	"datacleaner/pkg/config"
	"datacleaner/pkg/kafka"
	"datacleaner/pkg/logger"
	"datacleaner/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	published []kafka.Message
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, msg kafka.Message) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, msg)
	return nil
}

func newTestHandler(pub Publisher) *Handler {
	log := logger.New(logger.Config{Output: io.Discard})
	cfg := &config.Config{
		AgeMax:             config.DefaultAgeMax,
		QuantityMax:        config.DefaultQuantityMax,
		OrderDateFixedYear: config.DefaultOrderDateFixedYear,
		Workers:            1,
		ChunkSize:          1,
		Log:                log,
	}
	svc := service.NewCleaningService(nil, validator.NewCleaningValidator(), nil, cfg)
	return NewHandler(svc, pub, log)
}

func rawMessage(t *testing.T, v any) kafka.Message {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return kafka.Message{
		Key:     "rec-1",
		Value:   b,
		Topic:   "records.raw",
		Headers: map[string]string{kafka.HeaderCorrelationID: "corr-1", kafka.HeaderEventID: "evt-1"},
	}
}

func TestHandle_PublishesCleanedRecord(t *testing.T) {
	pub := &fakePublisher{}
	h := newTestHandler(pub)

	err := h.Handle(context.Background(), rawMessage(t, model.RecordMessage{
		ID:     "rec-1",
		Fields: model.Record{"Gender": "fem3le", "Quantity Ordered": "twenty one", "Age": "-5"},
	}))
	require.NoError(t, err)
	require.Len(t, pub.published, 1)

	msg := pub.published[0]
	assert.Equal(t, "rec-1", msg.Key)
	assert.Equal(t, "corr-1", msg.GetCorrelationID())
	assert.Equal(t, EventTypeRecordCleaned, msg.GetEventType())
	assert.NotEqual(t, "evt-1", msg.GetEventID(), "outgoing event gets its own id")

	var out model.CleanedRecordMessage
	require.NoError(t, msg.DecodeValue(&out))
	assert.Equal(t, "F", out.Fields["Gender_cleaned"])
	assert.Equal(t, 21.0, out.Fields["Quantity_Ordered_cleaned"])
	assert.Nil(t, out.Fields["Age_cleaned"])
	assert.Equal(t, []string{"Age_cleaned"}, out.InvalidFields)
	assert.Equal(t, "fem3le", out.Fields["Gender"])
}

func TestHandle_PermanentFailures(t *testing.T) {
	tests := []struct {
		name string
		msg  kafka.Message
	}{
		{name: "not json", msg: kafka.Message{Key: "k", Value: []byte("not json")}},
		{name: "missing id", msg: rawMessage(t, map[string]any{"fields": map[string]any{"Age": "1"}})},
		{name: "missing fields", msg: rawMessage(t, map[string]any{"id": "rec-1"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &fakePublisher{}
			err := newTestHandler(pub).Handle(context.Background(), tt.msg)

			require.Error(t, err)
			assert.Equal(t, kafka.ErrorTypePermanent, kafka.ClassifyError(err))
			assert.Empty(t, pub.published)
		})
	}
}

func TestHandle_PublishFailureIsTransient(t *testing.T) {
	pub := &fakePublisher{err: errors.New("write: broken")}
	err := newTestHandler(pub).Handle(context.Background(), rawMessage(t, model.RecordMessage{
		ID:     "rec-1",
		Fields: model.Record{"Age": "1"},
	}))

	require.Error(t, err)
	assert.Equal(t, kafka.ErrorTypeTransient, kafka.ClassifyError(err))
}

func TestHandle_PublisherClassificationKept(t *testing.T) {
	pub := &fakePublisher{err: kafka.NewPermanentError("cannot publish message", kafka.ErrEmptyKey)}
	err := newTestHandler(pub).Handle(context.Background(), rawMessage(t, model.RecordMessage{
		ID:     "rec-1",
		Fields: model.Record{"Age": "1"},
	}))

	assert.Equal(t, kafka.ErrorTypePermanent, kafka.ClassifyError(err))
}
