package handlers

import (
	"github.com/fullstackquiz/quiz-service/internal/config"
	"github.com/fullstackquiz/quiz-service/internal/repositories"
	"github.com/fullstackquiz/quiz-service/internal/services"
	"github.com/fullstackquiz/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	quizHandler *QuizHandler
	cfg         *config.Config
}

func NewHandlerManager(
	quizService services.QuizService,
	repo repositories.QuestionRepository,
	cfg *config.Config,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler: NewQuizHandler(quizService, repo, cfg, logger),
		cfg:         cfg,
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.quizHandler.Health)

	api := router.Group("/api")
	{
		api.GET("/info", hm.quizHandler.GetAppInfo)
		api.GET("/questions/:technology/:count", hm.quizHandler.GetQuestions)
	}

	if hm.cfg.StaticDir != "" {
		registerStatic(router, hm.cfg.StaticDir)
	}
}
