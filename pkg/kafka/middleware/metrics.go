package kafka_middleware

import (
	"context"
	"time"

	"datacleaner/pkg/kafka"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Metrics holds Kafka operation metrics.
type Metrics struct {
	Messages *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics registers the Kafka metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Messages: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datacleaner_kafka_messages_total",
			Help: "Kafka messages by direction, topic and outcome",
		}, []string{"direction", "topic", "outcome"}), // direction: "produce", "consume"

		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "datacleaner_kafka_message_duration_seconds",
			Help:    "Time spent publishing or handling one Kafka message",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"direction", "topic"}),
	}
}

func (m *Metrics) observe(direction, topic string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
	}
	m.Messages.WithLabelValues(direction, topic, outcome).Inc()
	m.Duration.WithLabelValues(direction, topic).Observe(d.Seconds())
}

// MetricsProducerMiddleware tracks producer metrics
func MetricsProducerMiddleware(m *Metrics) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		m.observe("produce", msg.Topic, time.Since(start), err)
		return err
	}
}

// MetricsConsumerMiddleware tracks consumer metrics
func MetricsConsumerMiddleware(m *Metrics) kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)
		m.observe("consume", msg.Topic, time.Since(start), err)
		return err
	}
}
