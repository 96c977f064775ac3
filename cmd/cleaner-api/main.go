package main

import (
	"datacleaner/internal/cleaning/handler"
	"datacleaner/internal/cleaning/metrics"
	"datacleaner/internal/cleaning/repository"
	"datacleaner/internal/cleaning/service"
	"datacleaner/internal/cleaning/validator"
	"datacleaner/pkg/app"
	"datacleaner/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const ServiceName = "cleaner-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	repo := repository.NewMongoCleaningRunRepository(cfg)
	svc := service.NewCleaningService(repo, validator.NewCleaningValidator(), metrics.New(reg), cfg)
	cleaningHandler := handler.NewCleaningHandler(svc, cfg.Log)
	healthHandler := handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log)

	application := app.NewApplication()
	application.SetApp(cfg, healthHandler, cleaningHandler, reg)
	application.Run()
}
