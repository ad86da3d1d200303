// Package events publishes user activity (bookings, cancellations) to Kafka.
package events

import (
	"context"
	"fmt"
	"time"

	"covoit/pkg/client"
	"covoit/pkg/kafka"
	kafka_config "covoit/pkg/kafka/config"
	kafka_middleware "covoit/pkg/kafka/middleware"
	"covoit/pkg/logger"
)

const SchemaVersion = "1"

const (
	VehicleReservationCreated   = "vehicle_reservation.created"
	VehicleReservationUpdated   = "vehicle_reservation.updated"
	VehicleReservationCancelled = "vehicle_reservation.cancelled"
	VehicleReservationEnded     = "vehicle_reservation.ended_early"
	ListingCreated              = "listing.created"
	ListingUpdated              = "listing.updated"
	ListingDeleted              = "listing.deleted"
	ListingSeatReserved         = "listing_seat.reserved"
	ListingSeatCancelled        = "listing_seat.cancelled"
)

type Event struct {
	Type       string
	Resource   string
	ResourceID int64
	Payload    any
	OccurredAt time.Time
}

// Key partitions events so that every change to one resource stays ordered.
func (e Event) Key() string {
	return fmt.Sprintf("%s:%d", e.Resource, e.ResourceID)
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Noop drops every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

type KafkaPublisher struct {
	producer *kafka.Producer
	source   string
}

func NewKafkaPublisher(producer *kafka.Producer, source string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, source: source}
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt Event) error {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now()
	}

	msg, err := kafka.NewMessage().
		WithKey(evt.Key()).
		WithEventType(evt.Type).
		WithCorrelationID(client.RequestIDFromContext(ctx)).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithTimestamp(evt.OccurredAt).
		WithValue(evt.Payload).
		Build()
	if err != nil {
		return fmt.Errorf("building %s event: %w", evt.Type, err)
	}

	return p.producer.Publish(ctx, msg)
}

// New returns a Kafka backed publisher when brokers are configured and a
// Noop otherwise. The returned close function is always safe to call.
func New(cfg *kafka_config.Config, topic, source string, log *logger.Logger) (Publisher, func() error, error) {
	if cfg == nil || !cfg.Enabled() {
		log.Debug("Activity events disabled, no Kafka broker configured")
		return Noop{}, func() error { return nil }, nil
	}

	producer, err := kafka.NewProducer(cfg, topic, log)
	if err != nil {
		return nil, nil, fmt.Errorf("creating activity producer: %w", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(log))

	cfg.LogConfiguration(log.Debug)
	log.Info("Activity events enabled", "topic", topic, "brokers", cfg.Brokers)

	return NewKafkaPublisher(producer, source), producer.Close, nil
}

// Emit publishes evt, logging failures instead of returning them.
func Emit(ctx context.Context, pub Publisher, log *logger.Logger, evt Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, evt); err != nil {
		log.Warn("Failed to publish activity event",
			"event_type", evt.Type,
			"key", evt.Key(),
			"error", err,
		)
	}
}
