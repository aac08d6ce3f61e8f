package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/SAP-F-2025/study-service/internal/auth"
	"github.com/SAP-F-2025/study-service/internal/session"
	"github.com/SAP-F-2025/study-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie carries the signed session token for browser clients.
	SessionCookie = "study_session"
	// SessionHeader returns the session token to clients that send it as a bearer token.
	SessionHeader = "X-Session-Token"

	sessionContextKey = "session"
)

// SessionOptions configures SessionMiddleware.
type SessionOptions struct {
	TTL          time.Duration
	SecureCookie bool
}

// SessionMiddleware resolves the caller's session from the session cookie or
// bearer token, starting a new one when it is missing, invalid or expired.
// The session is saved after the handler runs.
func SessionMiddleware(manager *session.Manager, tokens *auth.TokenIssuer, opts SessionOptions, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var sessionID string
		if token := sessionToken(c); token != "" {
			id, err := tokens.Parse(token)
			if err != nil {
				logger.Debug("Ignoring session token", "error", err, "expired", auth.IsExpired(err))
			}
			sessionID = id
		}

		sess, created, err := manager.Load(ctx, sessionID)
		if err != nil {
			logger.LogError(err, "Failed to load session", "session_id", sessionID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
				Message: "Failed to load session",
				Code:    CodeInternal,
			})
			return
		}
		if created {
			logger.Info("Session started", "session_id", sess.ID, "path", c.Request.URL.Path)
		}

		token, err := tokens.Issue(sess.ID)
		if err != nil {
			logger.LogError(err, "Failed to sign session token", "session_id", sess.ID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
				Message: "Failed to issue session token",
				Code:    CodeInternal,
			})
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, token, int(opts.TTL.Seconds()), "/", "", opts.SecureCookie, true)
		c.Header(SessionHeader, token)

		c.Set(sessionContextKey, sess)
		c.Next()

		if err := manager.Save(ctx, sess); err != nil {
			logger.LogError(err, "Failed to save session", "session_id", sess.ID)
		}
	}
}

// RequireAuth rejects requests whose session is not logged in.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFromContext(c)
		if sess == nil || !sess.Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Please log in to continue",
				Code:    CodeUnauthorized,
			})
			return
		}
		c.Next()
	}
}

// AdminMiddleware allows only logged in users that isAdmin accepts.
func AdminMiddleware(isAdmin func(email string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFromContext(c)
		if sess == nil || !sess.Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Please log in to continue",
				Code:    CodeUnauthorized,
			})
			return
		}
		if !isAdmin(sess.Email) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Admin access required",
				Code:    CodeForbidden,
			})
			return
		}
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

func sessionFromContext(c *gin.Context) *session.Session {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return nil
	}
	sess, _ := value.(*session.Session)
	return sess
}
