package repositories

import "github.com/fullstackquiz/quiz-service/internal/models"

// QuestionRepository is the read-only view over the loaded question banks.
// Implementations must be safe for concurrent readers: the backing data is
// published once at startup and never mutated afterwards.
type QuestionRepository interface {
	// GetByTopic returns a copy of the question pool for a topic key,
	// matched case-insensitively. Unknown topics yield an empty slice.
	GetByTopic(topic string) []models.Question

	// CountByTopic reports how many questions are stored for a topic.
	CountByTopic(topic string) int

	// Topics lists the topic keys configured at load time, including
	// topics whose banks failed to load and degraded to empty.
	Topics() []string
}
