package events

import (
	"time"

	"github.com/google/uuid"
)

// QuizEventType identifies the kind of quiz event being published.
type QuizEventType string

const (
	// EventQuizSelected is published after each successful question selection.
	EventQuizSelected QuizEventType = "quiz.selected"
)

const eventSource = "quiz-service"

// QuizEvent is the audit record emitted when a quiz is served.
type QuizEvent struct {
	ID         string        `json:"id"`
	Type       QuizEventType `json:"type"`
	Technology string        `json:"technology"`

	// Requested is what the caller asked for; Returned is what the pool
	// could actually supply after clamping.
	Requested int `json:"requested"`
	Returned  int `json:"returned"`

	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// NewQuizSelectedEvent builds a quiz.selected event with a fresh ID.
func NewQuizSelectedEvent(technology string, requested, returned int) *QuizEvent {
	return &QuizEvent{
		ID:         uuid.New().String(),
		Type:       EventQuizSelected,
		Technology: technology,
		Requested:  requested,
		Returned:   returned,
		Source:     eventSource,
		Timestamp:  time.Now().UTC(),
	}
}
