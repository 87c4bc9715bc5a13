package event_test

import (
	"context"
	"errors"
	"resalab/config"
	"resalab/infras/kafka"
	kafkaMocks "resalab/infras/kafka/mocks"
	otelMocks "resalab/infras/otel/mocks"
	"resalab/shared/event"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNewEntity(t *testing.T) {
	evt := event.NewEntity("reservation", event.ActionCreated, 42)

	_, err := uuid.Parse(evt.ID)
	assert.NoError(t, err)
	assert.Equal(t, "reservation", evt.Entity)
	assert.Equal(t, event.ActionCreated, evt.Action)
	assert.Equal(t, int64(42), evt.EntityID)
	assert.False(t, evt.OccurredAt.IsZero())
	assert.Equal(t, "reservation:42", evt.Key())

	assert.NotEqual(t, evt.ID, event.NewEntity("reservation", event.ActionCreated, 42).ID)
}

func TestKafkaPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	evt := event.NewEntity("salle", event.ActionDeleted, 3)

	client.EXPECT().SendMessages(gomock.Any(), "resalab.entity-events", kafka.Message{Key: "salle:3", Value: evt}).Return(nil)

	publisher := event.NewKafkaPublisher(client, "resalab.entity-events", otelMocks.NewOtel())
	publisher.Publish(context.Background(), evt)
}

func TestKafkaPublisher_PublishFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker unavailable"))
	client.EXPECT().Close().Return(nil)

	publisher := event.NewKafkaPublisher(client, "resalab.entity-events", otelMocks.NewOtel())

	assert.NotPanics(t, func() {
		publisher.Publish(context.Background(), event.NewEntity("reservation", event.ActionUpdated, 1))
	})
	assert.NoError(t, publisher.Close())
}

func TestNewPublisher_Disabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Enable = false

	publisher := event.NewPublisher(cfg, otelMocks.NewOtel())

	assert.NotPanics(t, func() {
		publisher.Publish(context.Background(), event.NewEntity("salle", event.ActionCreated, 1))
	})
	assert.NoError(t, publisher.Close())
}
