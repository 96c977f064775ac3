package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"datacleaner/internal/cleaning/handler"
	"datacleaner/internal/cleaning/metrics"
	"datacleaner/internal/cleaning/service"
	"datacleaner/internal/cleaning/stream"
	"datacleaner/internal/cleaning/validator"
	"datacleaner/pkg/app"
	"datacleaner/pkg/config"
	"datacleaner/pkg/kafka"
	kafka_config "datacleaner/pkg/kafka/config"
	kafka_middleware "datacleaner/pkg/kafka/middleware"
	"datacleaner/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const ServiceName = "cleaner-stream"

func main() {
	cfg := config.Load(ServiceName)

	kcfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kcfg.LogConfiguration(cfg.Log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := service.NewCleaningService(nil, validator.NewCleaningValidator(), metrics.New(reg), cfg)

	producer, err := kafka.NewProducer(kcfg, kcfg.CleanedTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	consumer, err := kafka.NewConsumer(kcfg, stream.NewHandler(svc, producer, cfg.Log).Handle, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	if kcfg.EnableMiddleware {
		kafkaMetrics := kafka_middleware.NewMetrics(reg)
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.MetricsProducerMiddleware(kafkaMetrics))
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
		consumer.Use(kafka_middleware.MetricsConsumerMiddleware(kafkaMetrics))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      monitoringHandler(reg, cfg.Log),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.Start(gctx)
	})
	g.Go(func() error {
		cfg.Log.Info("Starting monitoring server", "address", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()

	if closeErr := consumer.Close(); closeErr != nil {
		cfg.Log.Error("Failed to close Kafka consumer", "error", closeErr)
	}
	if closeErr := producer.Close(); closeErr != nil {
		cfg.Log.Error("Failed to close Kafka producer", "error", closeErr)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Fatal("Stream worker stopped", "error", err)
	}
	cfg.Log.Info("Stream worker stopped gracefully")
}

// monitoringHandler serves the probes and metrics of the worker.
func monitoringHandler(reg *prometheus.Registry, log *logger.Logger) http.Handler {
	router := httprouter.New()
	handler.NewHealthHandler(nil, log).RegisterRoutes(router)
	router.Handler(http.MethodGet, app.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return router
}
