package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"fmt"
	"resalab/config"
	"resalab/infras/kafka"
	"resalab/infras/otel"
	"resalab/shared/constant"
	"resalab/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Entity describes one lifecycle change of a persisted record.
type Entity struct {
	ID         string    `json:"id"`
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	EntityID   int64     `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEntity(entity, action string, entityID int64) Entity {
	return Entity{
		ID:         uuid.NewString(),
		Entity:     entity,
		Action:     action,
		EntityID:   entityID,
		OccurredAt: timezone.Now(),
	}
}

// Key groups every event of one record on the same partition.
func (e Entity) Key() string {
	return fmt.Sprintf("%s:%d", e.Entity, e.EntityID)
}

// Publisher sends events on a best-effort basis and never fails the caller.
type Publisher interface {
	Publish(ctx context.Context, evt Entity)
	Close() error
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

type noopPublisher struct{}

// NewPublisher returns a Kafka backed publisher, or a no-op one when Kafka is disabled.
func NewPublisher(cfg *config.Config, otl otel.Otel) Publisher {
	if !cfg.Kafka.Enable {
		log.Info().Msg("Kafka disabled, entity events will not be published")

		return noopPublisher{}
	}

	return NewKafkaPublisher(kafka.New(cfg), cfg.Kafka.Topic, otl)
}

func NewKafkaPublisher(client kafka.Client, topic string, otl otel.Otel) Publisher {
	return &kafkaPublisher{
		client: client,
		topic:  topic,
		otel:   otl,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, evt Entity) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		"event.entity": evt.Entity,
		"event.action": evt.Action,
		"event.key":    evt.Key(),
	})

	if err := p.client.SendMessages(ctx, p.topic, kafka.Message{Key: evt.Key(), Value: evt}); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", evt.Key()).Str("action", evt.Action).Msg("failed to publish entity event")
	}
}

// Close flushes queued events.
func (p *kafkaPublisher) Close() error {
	if err := p.client.Close(); err != nil {
		return fmt.Errorf("closing kafka client: %w", err)
	}

	return nil
}

func (noopPublisher) Publish(_ context.Context, _ Entity) {}

func (noopPublisher) Close() error {
	return nil
}
