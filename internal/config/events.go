package config

import (
	"log/slog"

	"github.com/fullstackquiz/quiz-service/internal/events"
)

// EventConfig holds configuration for quiz event publishing.
type EventConfig struct {
	Enabled   bool
	Publisher string // channel or mock
	Topic     string
}

func loadEventConfig() EventConfig {
	return EventConfig{
		Enabled:   getEnv("EVENTS_ENABLED", "true") == "true",
		Publisher: getEnv("EVENTS_PUBLISHER", "channel"),
		Topic:     getEnv("EVENTS_TOPIC", "quiz-events"),
	}
}

// CreateEventPublisher creates an event publisher based on configuration.
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, using mock publisher")
		return events.NewMockEventPublisher(logger), nil
	}

	switch c.Publisher {
	case "channel":
		logger.Info("Creating in-process event publisher", "topic", c.Topic)
		return events.NewChannelEventPublisher(events.PublisherConfig{
			TopicName: c.Topic,
			Logger:    logger,
		}), nil
	case "mock":
		logger.Info("Using mock event publisher")
		return events.NewMockEventPublisher(logger), nil
	default:
		logger.Warn("Unknown event publisher type, falling back to mock", "publisher", c.Publisher)
		return events.NewMockEventPublisher(logger), nil
	}
}
