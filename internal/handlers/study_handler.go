package handlers

import (
	"context"
	"net/http"

	"github.com/SAP-F-2025/study-service/internal/services"
	"github.com/SAP-F-2025/study-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type StudyHandler struct {
	BaseHandler
	studyService services.StudyService
}

func NewStudyHandler(studyService services.StudyService, logger utils.Logger) *StudyHandler {
	return &StudyHandler{
		BaseHandler:  NewBaseHandler(logger),
		studyService: studyService,
	}
}

// GetProvider reports which generation backend is in use and whether it has an API key
// @Router /study/provider [get]
func (h *StudyHandler) GetProvider(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Provider status",
		Data:    h.studyService.Provider(),
	})
}

// GenerateFlashcards creates flashcards from study material
// @Summary Generate flashcards
// @Tags study
// @Accept json
// @Produce json
// @Param request body services.FlashcardsRequest true "Material and card count"
// @Success 201 {object} SuccessResponse{data=services.GenerationResult}
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /study/flashcards [post]
func (h *StudyHandler) GenerateFlashcards(c *gin.Context) {
	var req services.FlashcardsRequest
	generate(h, c, &req, "flashcards", func(ctx context.Context, owner string) (*services.GenerationResult, error) {
		return h.studyService.GenerateFlashcards(ctx, owner, &req)
	})
}

// GenerateQuiz creates a multiple choice quiz
// @Router /study/quiz [post]
func (h *StudyHandler) GenerateQuiz(c *gin.Context) {
	var req services.QuizRequest
	generate(h, c, &req, "quiz", func(ctx context.Context, owner string) (*services.GenerationResult, error) {
		return h.studyService.GenerateQuiz(ctx, owner, &req)
	})
}

// GenerateMatching creates term/definition pairs for the matching game
// @Router /study/matching [post]
func (h *StudyHandler) GenerateMatching(c *gin.Context) {
	var req services.MatchingRequest
	generate(h, c, &req, "matching", func(ctx context.Context, owner string) (*services.GenerationResult, error) {
		return h.studyService.GenerateMatching(ctx, owner, &req)
	})
}

// GenerateSummary condenses study material
// @Router /study/summary [post]
func (h *StudyHandler) GenerateSummary(c *gin.Context) {
	var req services.SummaryRequest
	generate(h, c, &req, "summary", func(ctx context.Context, owner string) (*services.GenerationResult, error) {
		return h.studyService.GenerateSummary(ctx, owner, &req)
	})
}

// GenerateStudyGuide builds a study guide for a subject
// @Router /study/study-guide [post]
func (h *StudyHandler) GenerateStudyGuide(c *gin.Context) {
	var req services.StudyGuideRequest
	generate(h, c, &req, "study guide", func(ctx context.Context, owner string) (*services.GenerationResult, error) {
		return h.studyService.GenerateStudyGuide(ctx, owner, &req)
	})
}

// EvaluateAnswer grades a free-text answer against the expected one
// @Router /study/evaluation [post]
func (h *StudyHandler) EvaluateAnswer(c *gin.Context) {
	var req services.EvaluationRequest
	generate(h, c, &req, "evaluation", func(ctx context.Context, owner string) (*services.GenerationResult, error) {
		return h.studyService.EvaluateAnswer(ctx, owner, &req)
	})
}

// generate binds req, runs fn for the logged in user and writes the result.
func generate(h *StudyHandler, c *gin.Context, req interface{}, what string, fn func(ctx context.Context, owner string) (*services.GenerationResult, error)) {
	if !h.BindJSON(c, req) {
		return
	}
	sess := sessionFromContext(c)
	h.LogRequest(c, "Generating "+what)

	result, err := fn(c.Request.Context(), sess.Email)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to generate "+what)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Generated "+what, result, "kind", result.Kind, "saved_id", result.SavedID)
}
