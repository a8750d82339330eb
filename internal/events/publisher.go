package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventPublisher defines the interface for publishing quiz events.
type EventPublisher interface {
	PublishQuizEvent(ctx context.Context, event *QuizEvent) error
	Close() error
}

// ChannelEventPublisher implements EventPublisher using Watermill's
// in-process GoChannel pub/sub. The quiz service is self-contained, so
// events stay inside the process; consumers subscribe through Subscribe.
type ChannelEventPublisher struct {
	pubSub    *gochannel.GoChannel
	logger    *slog.Logger
	topicName string
}

// PublisherConfig holds configuration for the event publisher.
type PublisherConfig struct {
	TopicName string
	Logger    *slog.Logger
}

// NewChannelEventPublisher creates a new in-process event publisher using Watermill.
func NewChannelEventPublisher(config PublisherConfig) *ChannelEventPublisher {
	logger := watermill.NewSlogLogger(config.Logger)

	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, logger)

	return &ChannelEventPublisher{
		pubSub:    pubSub,
		logger:    config.Logger,
		topicName: config.TopicName,
	}
}

// PublishQuizEvent publishes a quiz event to the in-process topic.
func (p *ChannelEventPublisher) PublishQuizEvent(ctx context.Context, event *QuizEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal quiz event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("technology", event.Technology)
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))

	if err := p.pubSub.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish quiz event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish quiz event: %w", err)
	}

	return nil
}

// Subscribe returns the in-process stream of quiz events. Consumers must ack
// each message; the subscription ends when ctx is cancelled.
func (p *ChannelEventPublisher) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return p.pubSub.Subscribe(ctx, p.topicName)
}

// Close closes the publisher and releases resources.
func (p *ChannelEventPublisher) Close() error {
	return p.pubSub.Close()
}

// MockEventPublisher is a mock implementation for testing.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []QuizEvent
	logger *slog.Logger
}

// NewMockEventPublisher creates a new mock event publisher.
func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

// PublishQuizEvent stores the event in memory.
func (m *MockEventPublisher) PublishQuizEvent(ctx context.Context, event *QuizEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *event)
	m.logger.Debug("Mock: published quiz event",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

// Close is a no-op for the mock publisher.
func (m *MockEventPublisher) Close() error {
	return nil
}

// PublishedEvents returns all published events.
func (m *MockEventPublisher) PublishedEvents() []QuizEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]QuizEvent, len(m.events))
	copy(out, m.events)
	return out
}

// ClearEvents clears all published events.
func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
