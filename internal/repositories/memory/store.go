package memory

import (
	"sort"
	"strings"

	"github.com/fullstackquiz/quiz-service/internal/models"
	"github.com/fullstackquiz/quiz-service/internal/repositories"
)

// QuestionStore holds the question pools keyed by lower-cased topic. It is
// built once by the loader and never mutated afterwards, so concurrent
// readers need no locking.
type QuestionStore struct {
	pools map[string][]models.Question
}

var _ repositories.QuestionRepository = (*QuestionStore)(nil)

// NewQuestionStore builds a store from already-parsed pools. Keys are
// normalized to lower case; pools for the same normalized key are concatenated.
func NewQuestionStore(pools map[string][]models.Question) *QuestionStore {
	normalized := make(map[string][]models.Question, len(pools))
	for key, questions := range pools {
		key = strings.ToLower(key)
		normalized[key] = append(normalized[key], questions...)
	}
	return &QuestionStore{pools: normalized}
}

// GetByTopic returns a copy of the pool so callers can reorder it freely
// without touching the canonical sequence.
func (s *QuestionStore) GetByTopic(topic string) []models.Question {
	pool := s.pools[strings.ToLower(topic)]
	if len(pool) == 0 {
		return nil
	}
	out := make([]models.Question, len(pool))
	copy(out, pool)
	return out
}

// CountByTopic reports the pool size for a topic; unknown topics count zero.
func (s *QuestionStore) CountByTopic(topic string) int {
	return len(s.pools[strings.ToLower(topic)])
}

// Topics returns the loaded topic keys in sorted order.
func (s *QuestionStore) Topics() []string {
	keys := make([]string, 0, len(s.pools))
	for key := range s.pools {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
