package handlers

import (
	"github.com/SAP-F-2025/study-service/internal/auth"
	"github.com/SAP-F-2025/study-service/internal/services"
	"github.com/SAP-F-2025/study-service/internal/session"
	"github.com/SAP-F-2025/study-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// RouterConfig carries what the routes need besides the services.
type RouterConfig struct {
	Sessions *session.Manager
	Tokens   *auth.TokenIssuer
	Session  SessionOptions
	IsAdmin  func(email string) bool
}

type HandlerManager struct {
	sessionHandler *SessionHandler
	authHandler    *AuthHandler
	studyHandler   *StudyHandler
	quizHandler    *QuizHandler
	libraryHandler *LibraryHandler
	uploadHandler  *UploadHandler

	sessionMiddleware gin.HandlerFunc
	isAdmin           func(email string) bool
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	cfg RouterConfig,
	logger utils.Logger,
) *HandlerManager {
	isAdmin := cfg.IsAdmin
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}

	return &HandlerManager{
		sessionHandler: NewSessionHandler(logger),
		authHandler:    NewAuthHandler(serviceManager.Auth(), logger),
		studyHandler:   NewStudyHandler(serviceManager.Study(), logger),
		quizHandler:    NewQuizHandler(serviceManager.Quiz(), serviceManager.Export(), logger),
		libraryHandler: NewLibraryHandler(serviceManager.Library(), serviceManager.Export(), logger),
		uploadHandler:  NewUploadHandler(serviceManager.Ingest(), logger),

		sessionMiddleware: SessionMiddleware(cfg.Sessions, cfg.Tokens, cfg.Session, logger),
		isAdmin:           isAdmin,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1", hm.sessionMiddleware)
	{
		// Session and page navigation
		v1.GET("/session", hm.sessionHandler.GetSession)
		v1.POST("/session/actions", hm.sessionHandler.ApplyAction)

		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/signup", hm.authHandler.Signup)
			authRoutes.POST("/login", hm.authHandler.Login)
			authRoutes.POST("/logout", hm.authHandler.Logout)
			authRoutes.POST("/nickname", hm.authHandler.SetNickname)
		}

		v1.GET("/study/provider", hm.studyHandler.GetProvider)
		study := v1.Group("/study", RequireAuth())
		{
			study.POST("/flashcards", hm.studyHandler.GenerateFlashcards)
			study.POST("/quiz", hm.studyHandler.GenerateQuiz)
			study.POST("/matching", hm.studyHandler.GenerateMatching)
			study.POST("/summary", hm.studyHandler.GenerateSummary)
			study.POST("/study-guide", hm.studyHandler.GenerateStudyGuide)
			study.POST("/evaluation", hm.studyHandler.EvaluateAnswer)
		}

		// Quiz state machine
		quiz := v1.Group("/quiz", RequireAuth())
		{
			quiz.GET("", hm.quizHandler.GetQuiz)
			quiz.POST("/ai", hm.quizHandler.StartAI)
			quiz.POST("/ai/content", hm.quizHandler.SetContent)
			quiz.POST("/ai/generate", hm.quizHandler.Generate)
			quiz.POST("/back", hm.quizHandler.Back)
			quiz.POST("/manual", hm.quizHandler.StartManual)
			quiz.POST("/manual/questions", hm.quizHandler.AddQuestion)
			quiz.DELETE("/manual/questions", hm.quizHandler.ClearQuestions)
			quiz.POST("/manual/import", hm.quizHandler.ImportQuestions)
			quiz.POST("/manual/play", hm.quizHandler.PlayCustom)
			quiz.POST("/answers", hm.quizHandler.Answer)
			quiz.POST("/submit", hm.quizHandler.Submit)
			quiz.GET("/result", hm.quizHandler.GetResult)
			quiz.POST("/retry", hm.quizHandler.Retry)
			quiz.POST("/exit", hm.quizHandler.Exit)
		}

		library := v1.Group("/library", RequireAuth())
		{
			library.GET("", hm.libraryHandler.ListRecords)
			library.GET("/:id", hm.libraryHandler.GetRecord)
			library.DELETE("/:id", hm.libraryHandler.DeleteRecord)
			library.GET("/:id/export", hm.libraryHandler.ExportRecord)
			library.POST("/:id/play", hm.libraryHandler.PlayRecord)
		}

		v1.POST("/uploads/text", RequireAuth(), hm.uploadHandler.ExtractText)

		admin := v1.Group("/admin", AdminMiddleware(hm.isAdmin))
		{
			admin.GET("/users", hm.authHandler.ListUsers)
		}
	}
}
