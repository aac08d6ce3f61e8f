package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/study-service/internal/session"
	"github.com/SAP-F-2025/study-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	BaseHandler
}

func NewSessionHandler(logger utils.Logger) *SessionHandler {
	return &SessionHandler{BaseHandler: NewBaseHandler(logger)}
}

// ActionRequest is a navigation event. Tab is required for select_tab.
type ActionRequest struct {
	Action session.Action `json:"action" binding:"required"`
	Tab    string         `json:"tab"`
}

// GetSession returns the current page and quiz state
// @Router /session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Session retrieved",
		Data:    newSessionView(sessionFromContext(c)),
	})
}

// ApplyAction moves the session to another page
// @Router /session/actions [post]
func (h *SessionHandler) ApplyAction(c *gin.Context) {
	var req ActionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.LogRequest(c, "Applying session action", "action", req.Action)

	sess := sessionFromContext(c)
	if err := sess.Apply(req.Action, req.Tab); err != nil {
		h.HandleServiceError(c, err, "Failed to apply action")
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Action applied", newSessionView(sess), "page", sess.Page)
}
