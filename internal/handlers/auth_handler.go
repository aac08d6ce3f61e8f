package handlers

import (
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/study-service/internal/repositories"
	"github.com/SAP-F-2025/study-service/internal/services"
	"github.com/SAP-F-2025/study-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

type NicknameRequest struct {
	Nickname string `json:"nickname"`
}

// Signup creates an account and moves the session to the nickname prompt
// @Summary Sign up
// @Tags auth
// @Accept json
// @Produce json
// @Param user body services.SignupRequest true "Account data"
// @Success 201 {object} SuccessResponse{data=SessionView}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	h.LogRequest(c, "Signing up")

	var req services.SignupRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to sign up")
		return
	}

	sess := sessionFromContext(c)
	sess.SignupSucceeded(user.Email, user.Name)
	h.RespondWithSuccess(c, http.StatusCreated, "Account created", newSessionView(sess), "email", user.Email)
}

// Login checks the credentials and opens the app
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginRequest true "Credentials"
// @Success 200 {object} SuccessResponse{data=SessionView}
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Logging in")

	var req services.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to log in")
		return
	}

	sess := sessionFromContext(c)
	sess.LoginSucceeded(user.Email, user.Name)
	h.RespondWithSuccess(c, http.StatusOK, "Logged in", newSessionView(sess), "email", user.Email)
}

// Logout clears the identity of the session
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := sessionFromContext(c)
	sess.Logout()
	h.RespondWithSuccess(c, http.StatusOK, "Logged out", newSessionView(sess))
}

// SetNickname stores the name shown in the app
// @Router /auth/nickname [post]
func (h *AuthHandler) SetNickname(c *gin.Context) {
	var req NicknameRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sess := sessionFromContext(c)
	if err := sess.SetNickname(req.Nickname); err != nil {
		h.HandleServiceError(c, err, "Failed to set nickname")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Nickname saved", newSessionView(sess))
}

// ListUsers lists registered accounts
// @Summary List users
// @Tags admin
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} SuccessResponse{data=services.UserListResponse}
// @Router /admin/users [get]
func (h *AuthHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	filters := repositories.UserFilters{}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		filters.Offset = offset
	}

	users, err := h.authService.ListUsers(c.Request.Context(), filters)
	if err != nil {
		h.HandleServiceError(c, err, "Failed to list users")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Users retrieved", users, "total", users.Total)
}
