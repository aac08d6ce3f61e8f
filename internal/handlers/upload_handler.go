package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/study-service/internal/services"
	"github.com/SAP-F-2025/study-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	BaseHandler
	ingestService services.IngestService
}

func NewUploadHandler(ingestService services.IngestService, logger utils.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   NewBaseHandler(logger),
		ingestService: ingestService,
	}
}

// ExtractText converts an uploaded .txt or .pdf file to plain text
// @Summary Extract text from upload
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Study material"
// @Success 200 {object} SuccessResponse{data=services.Document}
// @Failure 400 {object} ErrorResponse
// @Router /uploads/text [post]
func (h *UploadHandler) ExtractText(c *gin.Context) {
	file, err := formFile(c)
	if err != nil {
		h.respondWithError(c, http.StatusBadRequest, CodeInvalidPayload, "A file upload is required", err)
		return
	}
	h.LogRequest(c, "Extracting text from upload", "filename", file.Filename, "size", file.Size)

	reader, err := file.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to open upload", err)
		return
	}
	defer reader.Close()

	doc, err := h.ingestService.ExtractText(c.Request.Context(), reader, file.Size, file.Filename)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to read upload")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Text extracted", doc, "words", doc.WordCount)
}
