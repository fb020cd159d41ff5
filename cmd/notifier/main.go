package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"lagerbok/pkg/config"
	"lagerbok/pkg/kafka"
	kafka_config "lagerbok/pkg/kafka/config"
	kafka_middleware "lagerbok/pkg/kafka/middleware"
	"lagerbok/pkg/model"
)

const ServiceName = "notifier"

// The notifier consumes booking and renewal events and turns them into
// operator notifications. Delivery today is the structured log stream the
// on-call dashboards tail.
func main() {
	cfg := config.Load(ServiceName)
	kafkaCfg := kafka_config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bookingConsumer := newConsumer(cfg, kafkaCfg, cfg.BookingEventsTopic, handleBookingEvent(cfg))
	renewalConsumer := newConsumer(cfg, kafkaCfg, cfg.RenewalsTopic, handleRenewalEvent(cfg))

	go runConsumer(ctx, cfg, bookingConsumer, cfg.BookingEventsTopic)
	go runConsumer(ctx, cfg, renewalConsumer, cfg.RenewalsTopic)

	cfg.Log.Info("Notifier started",
		"booking_topic", cfg.BookingEventsTopic,
		"renewals_topic", cfg.RenewalsTopic,
	)

	<-ctx.Done()
	cfg.Log.Info("Notifier shutting down")

	if err := bookingConsumer.Close(); err != nil {
		cfg.Log.Warn("Failed to close booking consumer", "error", err)
	}
	if err := renewalConsumer.Close(); err != nil {
		cfg.Log.Warn("Failed to close renewal consumer", "error", err)
	}
}

func newConsumer(cfg *config.Config, kafkaCfg *kafka_config.Config, topic string, handler kafka.MessageHandler) *kafka.Consumer {
	consumer, err := kafka.NewConsumer(kafkaCfg, topic, ServiceName, topic+".dlq", handler)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "topic", topic, "error", err)
	}

	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	consumer.Use(kafka_middleware.MetricsConsumerMiddleware())

	return consumer
}

func runConsumer(ctx context.Context, cfg *config.Config, consumer *kafka.Consumer, topic string) {
	if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
		cfg.Log.Error("Consumer stopped unexpectedly", "topic", topic, "error", err)
	}
}

func handleBookingEvent(cfg *config.Config) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		eventType := msg.GetEventType()

		switch eventType {
		case model.EventBookingCommitted:
			var event model.BookingCommittedEvent
			if err := msg.DecodeValue(&event); err != nil {
				return err
			}
			cfg.Log.Info("Booking confirmed",
				"storage_id", event.StorageID,
				"company", event.CompanyName,
				"slots", event.TotalSlots,
				"start_date", event.StartDate,
				"end_date", event.EndDate,
			)
		case model.EventBookingRemoved:
			var event model.BookingRemovedEvent
			if err := msg.DecodeValue(&event); err != nil {
				return err
			}
			cfg.Log.Info("Booking cancelled",
				"storage_id", event.StorageID,
				"slot_id", event.SlotID,
				"booking_id", event.BookingID,
			)
		default:
			cfg.Log.Warn("Unknown booking event type", "event_type", eventType)
		}

		return nil
	}
}

func handleRenewalEvent(cfg *config.Config) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event model.RenewalDueEvent
		if err := msg.DecodeValue(&event); err != nil {
			return err
		}

		cfg.Log.Info("Renewal notice",
			"storage", event.StorageName,
			"slot", event.SlotName,
			"company", event.CompanyName,
			"email", event.CompanyEmail,
			"days_until_expiry", event.DaysUntilExpiry,
		)
		return nil
	}
}
