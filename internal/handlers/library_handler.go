package handlers

import (
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/study-service/internal/repositories"
	"github.com/SAP-F-2025/study-service/internal/services"
	"github.com/SAP-F-2025/study-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// LibraryHandler serves the records saved for the logged in user.
type LibraryHandler struct {
	BaseHandler
	libraryService services.LibraryService
	exportService  services.ExportService
}

func NewLibraryHandler(libraryService services.LibraryService, exportService services.ExportService, logger utils.Logger) *LibraryHandler {
	return &LibraryHandler{
		BaseHandler:    NewBaseHandler(logger),
		libraryService: libraryService,
		exportService:  exportService,
	}
}

// ListRecords lists saved records, newest first
// @Summary List saved records
// @Tags library
// @Produce json
// @Param kind query string false "Record kind"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} SuccessResponse{data=services.RecordListResponse}
// @Router /library [get]
func (h *LibraryHandler) ListRecords(c *gin.Context) {
	filters := repositories.StudyRecordFilters{}
	if kind := c.Query("kind"); kind != "" {
		filters.Kind = &kind
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		filters.Offset = offset
	}

	list, err := h.libraryService.List(c.Request.Context(), sessionFromContext(c).Email, filters)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to list records")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Records retrieved", list, "total", list.Total)
}

// GetRecord returns one saved record
// @Router /library/{id} [get]
func (h *LibraryHandler) GetRecord(c *gin.Context) {
	id, ok := ParseStringIDParam(c, "id")
	if !ok {
		return
	}
	record, err := h.libraryService.Get(c.Request.Context(), sessionFromContext(c).Email, id)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to get record")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Record retrieved", Data: record})
}

// DeleteRecord removes a saved record
// @Router /library/{id} [delete]
func (h *LibraryHandler) DeleteRecord(c *gin.Context) {
	id, ok := ParseStringIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.libraryService.Delete(c.Request.Context(), sessionFromContext(c).Email, id); err != nil {
		h.HandleServiceError(c, err, "Failed to delete record")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Record deleted", nil, "id", id)
}

// ExportRecord downloads a saved record as a spreadsheet
// @Param format query string false "csv or xlsx (default)"
// @Router /library/{id}/export [get]
func (h *LibraryHandler) ExportRecord(c *gin.Context) {
	id, ok := ParseStringIDParam(c, "id")
	if !ok {
		return
	}
	format := services.ExportFormat(c.DefaultQuery("format", string(services.ExportXLSX)))

	file, err := h.exportService.Export(c.Request.Context(), sessionFromContext(c).Email, id, format)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to export record")
		return
	}

	h.LogInfo(c, "Record exported", "id", id, "format", format)
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// PlayRecord loads a saved quiz into the quiz flow
// @Router /library/{id}/play [post]
func (h *LibraryHandler) PlayRecord(c *gin.Context) {
	id, ok := ParseStringIDParam(c, "id")
	if !ok {
		return
	}
	sess := sessionFromContext(c)
	if err := h.libraryService.PlayQuiz(c.Request.Context(), sess, id); err != nil {
		h.HandleServiceError(c, err, "Failed to play quiz")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Quiz started", newQuizView(&sess.Quiz), "id", id)
}
