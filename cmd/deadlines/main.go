package main

import (
	"context"

	"lagerbok/internal/deadlines/handler"
	"lagerbok/internal/deadlines/repository"
	"lagerbok/internal/deadlines/service"
	"lagerbok/internal/health"
	"lagerbok/pkg/app"
	"lagerbok/pkg/config"
	"lagerbok/pkg/kafka"
	kafka_config "lagerbok/pkg/kafka/config"
	kafka_middleware "lagerbok/pkg/kafka/middleware"
)

const ServiceName = "deadlines"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Deadlines service")

	producer := initProducer(cfg)
	if producer != nil {
		defer func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Warn("Failed to close Kafka producer", "error", err)
			}
		}()
	}

	deadlineService := initServices(cfg, producer)

	scannerCtx, stopScanner := context.WithCancel(context.Background())
	defer stopScanner()
	go deadlineService.RunScanner(scannerCtx)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		handler.NewDeadlineHandler(deadlineService, cfg.Log),
		health.NewHandler(ServiceName, cfg.Client.Mongo, cfg.Log),
	)
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg := kafka_config.Load()

	producer, err := kafka.NewProducer(kafkaCfg, cfg.RenewalsTopic, cfg.RenewalsTopic+".dlq")
	if err != nil {
		cfg.Log.Warn("Kafka producer unavailable, renewal notices disabled", "error", err)
		return nil
	}

	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafka_middleware.MetricsProducerMiddleware())

	cfg.Log.Info("Kafka producer initialized", "topic", cfg.RenewalsTopic)
	return producer
}

func initServices(cfg *config.Config, producer *kafka.Producer) service.DeadlineService {
	storageRepo := repository.NewMongoStorageRepository(cfg)
	deadlineService := service.NewDeadlineService(storageRepo, producer, cfg)

	cfg.Log.Info("Deadline service initialized", "database", cfg.MongoDatabaseName)
	return deadlineService
}
