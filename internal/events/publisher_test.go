package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChannelEventPublisher_RoundTrip(t *testing.T) {
	publisher := NewChannelEventPublisher(PublisherConfig{
		TopicName: "quiz-events",
		Logger:    discardLogger(),
	})
	defer publisher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := publisher.Subscribe(ctx)
	require.NoError(t, err)

	event := NewQuizSelectedEvent("spring", 30, 30)
	require.NoError(t, publisher.PublishQuizEvent(ctx, event))

	select {
	case msg := <-messages:
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, string(EventQuizSelected), msg.Metadata.Get("event_type"))
		assert.Equal(t, "spring", msg.Metadata.Get("technology"))

		var received QuizEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &received))
		assert.Equal(t, 30, received.Requested)
		assert.Equal(t, 30, received.Returned)
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for quiz event")
	}
}

func TestMockEventPublisher_RecordsEvents(t *testing.T) {
	publisher := NewMockEventPublisher(discardLogger())

	require.NoError(t, publisher.PublishQuizEvent(context.Background(), NewQuizSelectedEvent("angular", 10, 10)))
	require.NoError(t, publisher.PublishQuizEvent(context.Background(), NewQuizSelectedEvent("spring", 20, 12)))

	published := publisher.PublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, "angular", published[0].Technology)
	assert.Equal(t, 12, published[1].Returned)

	publisher.ClearEvents()
	assert.Empty(t, publisher.PublishedEvents())
}

func TestNewQuizSelectedEvent(t *testing.T) {
	event := NewQuizSelectedEvent("spring", 50, 35)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, EventQuizSelected, event.Type)
	assert.Equal(t, "quiz-service", event.Source)
	assert.Equal(t, 50, event.Requested)
	assert.Equal(t, 35, event.Returned)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, time.Minute)
}
