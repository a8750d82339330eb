package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fullstackquiz/quiz-service/internal/config"
	"github.com/fullstackquiz/quiz-service/internal/models"
	"github.com/fullstackquiz/quiz-service/internal/repositories"
	"github.com/fullstackquiz/quiz-service/internal/services"
	"github.com/fullstackquiz/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	BaseHandler
	quizService services.QuizService
	repo        repositories.QuestionRepository
	cfg         *config.Config
}

func NewQuizHandler(
	quizService services.QuizService,
	repo repositories.QuestionRepository,
	cfg *config.Config,
	logger utils.Logger,
) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		quizService: quizService,
		repo:        repo,
		cfg:         cfg,
	}
}

// GetQuestions returns a randomized question set for one quiz attempt.
// Technology and count are validated against the configured closed sets
// here at the boundary; the selection service itself tolerates any input
// and signals "nothing available" with an empty result.
func (h *QuizHandler) GetQuestions(c *gin.Context) {
	technology := c.Param("technology")
	h.LogRequest(c, "Quiz questions requested",
		"technology", technology, "count", c.Param("count"))

	if !h.cfg.AllowsTechnology(technology) {
		h.LogWarn(c, "Invalid technology requested", "technology", technology)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid technology",
			Details: "technology must be one of: " + strings.Join(h.cfg.Technologies, ", "),
		})
		return
	}

	count, err := strconv.Atoi(c.Param("count"))
	if err != nil || !h.cfg.AllowsCount(count) {
		h.LogWarn(c, "Invalid count requested", "count", c.Param("count"))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid count",
			Details: "count must be one of: " + joinCounts(h.cfg.Counts),
		})
		return
	}

	questions := h.quizService.GetRandomQuestions(c.Request.Context(), technology, count)
	if len(questions) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "No questions found for technology " + technology,
		})
		return
	}

	c.JSON(http.StatusOK, questions)
}

// GetAppInfo returns the application name and version.
func (h *QuizHandler) GetAppInfo(c *gin.Context) {
	c.JSON(http.StatusOK, models.AppInfo{
		Version: h.cfg.AppVersion,
		Name:    h.cfg.AppName,
	})
}

// Health reports per-topic pool sizes. A topic that loaded zero questions
// marks the service degraded, so bank load failures surface in health checks
// without changing per-request behavior.
func (h *QuizHandler) Health(c *gin.Context) {
	status := "healthy"
	topics := gin.H{}
	for _, topic := range h.repo.Topics() {
		count := h.repo.CountByTopic(topic)
		topics[topic] = count
		if count == 0 {
			status = "degraded"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"service": h.cfg.AppName,
		"topics":  topics,
	})
}

func joinCounts(counts []int) string {
	parts := make([]string, len(counts))
	for i, n := range counts {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
