package main

import (
	"lagerbok/internal/bookings/handler"
	"lagerbok/internal/bookings/repository"
	"lagerbok/internal/bookings/service"
	"lagerbok/internal/bookings/validator"
	"lagerbok/internal/health"
	"lagerbok/pkg/app"
	"lagerbok/pkg/config"
	"lagerbok/pkg/kafka"
	kafka_config "lagerbok/pkg/kafka/config"
	kafka_middleware "lagerbok/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")

	producer := initProducer(cfg)
	if producer != nil {
		defer func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Warn("Failed to close Kafka producer", "error", err)
			}
		}()
	}

	bookingService := initServices(cfg, producer)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		handler.NewBookingHandler(bookingService, cfg.Log),
		health.NewHandler(ServiceName, cfg.Client.Mongo, cfg.Log),
	)
	serverApp.Run()
}

// initProducer builds the event producer. The service stays usable without
// Kafka, commits just go unannounced.
func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg := kafka_config.Load()

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.BookingEventsTopic+".dlq")
	if err != nil {
		cfg.Log.Warn("Kafka producer unavailable, events disabled", "error", err)
		return nil
	}

	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafka_middleware.MetricsProducerMiddleware())

	cfg.Log.Info("Kafka producer initialized", "topic", cfg.BookingEventsTopic)
	return producer
}

func initServices(cfg *config.Config, producer *kafka.Producer) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	bookingService := service.NewBookingService(
		bookingRepo,
		bookingValidator,
		producer,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}
