package services

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/fullstackquiz/quiz-service/internal/events"
	"github.com/fullstackquiz/quiz-service/internal/models"
	"github.com/fullstackquiz/quiz-service/internal/repositories"
)

// QuizService selects randomized question sets for one quiz attempt.
type QuizService interface {
	// GetRandomQuestions returns up to count distinct questions for a
	// technology in shuffled order. Unknown or empty technologies yield an
	// empty slice, not an error; a count above the pool size is clamped.
	GetRandomQuestions(ctx context.Context, technology string, count int) []models.Question

	// GetAllQuestions returns the full pool for a technology in stored order.
	GetAllQuestions(ctx context.Context, technology string) []models.Question
}

type quizService struct {
	repo      repositories.QuestionRepository
	logger    *slog.Logger
	publisher events.EventPublisher
	rng       *rand.Rand
}

// NewQuizService creates the selection service. rng may be nil, in which
// case the process-wide generator is used; tests inject a seeded source for
// reproducible shuffles.
func NewQuizService(repo repositories.QuestionRepository, logger *slog.Logger, publisher events.EventPublisher, rng *rand.Rand) QuizService {
	return &quizService{
		repo:      repo,
		logger:    logger,
		publisher: publisher,
		rng:       rng,
	}
}

func (s *quizService) GetRandomQuestions(ctx context.Context, technology string, count int) []models.Question {
	requested := count

	// GetByTopic hands back a private copy, so the shuffle below never
	// touches the store's canonical sequence.
	pool := s.repo.GetByTopic(technology)
	if len(pool) == 0 {
		s.logger.Warn("No questions found for technology", "technology", technology)
		return nil
	}

	if count > len(pool) {
		s.logger.Warn("Requested count exceeds available questions, returning all",
			"technology", technology, "requested", count, "available", len(pool))
		count = len(pool)
	}

	s.shuffle(pool)
	selected := pool[:count]

	s.publishSelected(ctx, technology, requested, len(selected))
	return selected
}

func (s *quizService) GetAllQuestions(ctx context.Context, technology string) []models.Question {
	return s.repo.GetByTopic(technology)
}

// shuffle applies an unbiased Fisher-Yates reorder; taking a prefix of the
// result is then a uniform sample.
func (s *quizService) shuffle(pool []models.Question) {
	swap := func(i, j int) { pool[i], pool[j] = pool[j], pool[i] }
	if s.rng != nil {
		s.rng.Shuffle(len(pool), swap)
		return
	}
	rand.Shuffle(len(pool), swap)
}

// publishSelected emits the audit event for a served quiz. Publishing is
// fire-and-forget: a failed event never fails the selection.
func (s *quizService) publishSelected(ctx context.Context, technology string, requested, returned int) {
	if s.publisher == nil {
		return
	}
	event := events.NewQuizSelectedEvent(technology, requested, returned)
	if err := s.publisher.PublishQuizEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish quiz event", "event_id", event.ID, "error", err)
	}
}
