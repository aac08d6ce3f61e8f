package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/SAP-F-2025/study-service/internal/services"
	"github.com/SAP-F-2025/study-service/internal/session"
	"github.com/SAP-F-2025/study-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// QuizHandler exposes the quiz flow of the session.
type QuizHandler struct {
	BaseHandler
	quizService   services.QuizService
	exportService services.ExportService
}

func NewQuizHandler(quizService services.QuizService, exportService services.ExportService, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler:   NewBaseHandler(logger),
		quizService:   quizService,
		exportService: exportService,
	}
}

type ContentRequest struct {
	Content string `json:"content"`
}

// GetQuiz returns the quiz flow state
// @Router /quiz [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Quiz state",
		Data:    newQuizView(&sessionFromContext(c).Quiz),
	})
}

// StartAI opens the upload step of an AI quiz
// @Router /quiz/ai [post]
func (h *QuizHandler) StartAI(c *gin.Context) {
	h.transition(c, "AI quiz started", h.quizService.StartAI)
}

// SetContent stores the material for an AI quiz
// @Router /quiz/ai/content [post]
func (h *QuizHandler) SetContent(c *gin.Context) {
	var req ContentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sess := sessionFromContext(c)
	if err := h.quizService.SetContent(c.Request.Context(), sess, req.Content); err != nil {
		h.HandleServiceError(c, err, "Failed to set quiz content")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Quiz content saved", newQuizView(&sess.Quiz))
}

// Generate creates the AI quiz and starts playing it
// @Router /quiz/ai/generate [post]
func (h *QuizHandler) Generate(c *gin.Context) {
	var req services.QuizSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.respondWithError(c, http.StatusBadRequest, CodeInvalidPayload, "Invalid request payload", err, err.Error())
		return
	}
	sess := sessionFromContext(c)
	h.LogRequest(c, "Generating session quiz", "count", req.Count)

	if _, err := h.quizService.Generate(c.Request.Context(), sess, &req); err != nil {
		h.HandleServiceError(c, err, "Failed to generate quiz")
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Quiz generated", newQuizView(&sess.Quiz))
}

// Back returns to the previous quiz step
// @Router /quiz/back [post]
func (h *QuizHandler) Back(c *gin.Context) {
	h.transition(c, "Moved back", h.quizService.Back)
}

// StartManual opens the manual quiz builder
// @Router /quiz/manual [post]
func (h *QuizHandler) StartManual(c *gin.Context) {
	h.transition(c, "Manual quiz started", h.quizService.StartManual)
}

// AddQuestion adds a hand-written question
// @Router /quiz/manual/questions [post]
func (h *QuizHandler) AddQuestion(c *gin.Context) {
	var req session.ManualQuestion
	if !h.BindJSON(c, &req) {
		return
	}
	sess := sessionFromContext(c)
	question, err := h.quizService.AddManualQuestion(c.Request.Context(), sess, req)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to add question")
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Question added", question, "question_id", question.ID)
}

// ImportQuestions adds manual questions from an uploaded CSV or XLSX sheet
// @Router /quiz/manual/import [post]
func (h *QuizHandler) ImportQuestions(c *gin.Context) {
	file, err := formFile(c)
	if err != nil {
		h.respondWithError(c, http.StatusBadRequest, CodeInvalidPayload, "A file upload is required", err)
		return
	}
	reader, err := file.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to open upload", err)
		return
	}
	defer reader.Close()

	sess := sessionFromContext(c)
	result, err := h.exportService.ImportQuizQuestions(c.Request.Context(), sess, reader, file.Filename)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to import questions")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Questions imported", result,
		"success_count", result.SuccessCount, "error_count", result.ErrorCount)
}

// ClearQuestions drops the hand-written questions
// @Router /quiz/manual/questions [delete]
func (h *QuizHandler) ClearQuestions(c *gin.Context) {
	h.transition(c, "Questions cleared", h.quizService.ClearManual)
}

// PlayCustom starts the hand-written quiz
// @Router /quiz/manual/play [post]
func (h *QuizHandler) PlayCustom(c *gin.Context) {
	h.transition(c, "Custom quiz started", h.quizService.PlayCustom)
}

// Answer records the chosen option of a question
// @Router /quiz/answers [post]
func (h *QuizHandler) Answer(c *gin.Context) {
	var req services.AnswerRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sess := sessionFromContext(c)
	if err := h.quizService.Answer(c.Request.Context(), sess, &req); err != nil {
		h.HandleServiceError(c, err, "Failed to record answer")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Answer recorded", newQuizView(&sess.Quiz))
}

// Submit scores the quiz
// @Router /quiz/submit [post]
func (h *QuizHandler) Submit(c *gin.Context) {
	result, err := h.quizService.Submit(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		h.HandleServiceError(c, err, "Failed to submit quiz")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Quiz submitted", result, "percent", result.Percent, "grade", result.Grade)
}

// GetResult returns the score of the submitted quiz
// @Router /quiz/result [get]
func (h *QuizHandler) GetResult(c *gin.Context) {
	result, err := h.quizService.Result(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		h.HandleServiceError(c, err, "Failed to get quiz result")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Quiz result", Data: result})
}

// Retry clears the answers to play the same quiz again
// @Router /quiz/retry [post]
func (h *QuizHandler) Retry(c *gin.Context) {
	h.transition(c, "Quiz restarted", h.quizService.Retry)
}

// Exit leaves the quiz and returns to the menu
// @Router /quiz/exit [post]
func (h *QuizHandler) Exit(c *gin.Context) {
	h.transition(c, "Quiz closed", h.quizService.Exit)
}

func (h *QuizHandler) transition(c *gin.Context, message string, fn func(ctx context.Context, sess *session.Session) error) {
	sess := sessionFromContext(c)
	if err := fn(c.Request.Context(), sess); err != nil {
		h.HandleServiceError(c, err, "Failed to change quiz step")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, message, newQuizView(&sess.Quiz), "step", sess.Quiz.Step)
}
