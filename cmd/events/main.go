package main

import (
	"context"
	"os"
	"os/signal"
	"resalab/config"
	"resalab/infras/kafka"
	"resalab/shared/event"
	"resalab/shared/logger"
	"syscall"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Tails the entity event topic and logs every event, for local inspection.
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg.Server.Env)
	logger.SetLogLevel(cfg)

	if !cfg.Kafka.Enable {
		log.Fatal().Msg("Kafka is disabled, set KAFKA_ENABLE=true")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := kafka.New(cfg)
	defer func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka client")
		}
	}()

	log.Info().Str("topic", cfg.Kafka.Topic).Str("group", cfg.Kafka.ConsumerGroup).Msg("Consuming entity events")

	client.Consume(ctx, cfg.Kafka.ConsumerGroup, cfg.Kafka.Topic, func(message kafkaGo.Message) {
		key, evt, err := kafka.DecodeKafkaMessage[event.Entity](message)
		if err != nil {
			return
		}

		log.Info().
			Str("key", key).
			Str("event_id", evt.ID).
			Str("entity", evt.Entity).
			Str("action", evt.Action).
			Int64("entity_id", evt.EntityID).
			Time("occurred_at", evt.OccurredAt).
			Msg("entity event")
	})
}
