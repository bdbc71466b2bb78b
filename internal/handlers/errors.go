package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/middleware"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body returned by every handler.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondError maps a service error to its HTTP status. Server-side failures are
// logged and sent to Sentry; their details never reach the client.
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind := apperrors.KindOf(err)
	status := kind.HTTPStatus()

	body := ErrorResponse{Error: err.Error()}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		body.Field = appErr.Field
		if appErr.Message != "" {
			body.Error = appErr.Message
		}
	}

	switch kind {
	case apperrors.KindInternal, apperrors.KindDataIntegrity:
		logger.Error(action, slog.String("kind", kind.String()), slog.String("error", err.Error()))
		captureException(c, err)
		body = ErrorResponse{Error: "Internal server error"}
	case apperrors.KindUpstream:
		logger.Error(action, slog.String("kind", kind.String()), slog.String("error", err.Error()))
		captureException(c, err)
	default:
		logger.Warn(action, slog.String("kind", kind.String()), slog.String("error", err.Error()))
	}
	c.JSON(status, body)
}

func captureException(c *gin.Context, err error) {
	if hub := sentry.GetHubFromContext(c.Request.Context()); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}

// respondBindError answers a request whose body or query failed to bind.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request: " + err.Error()})
}

// requireUserID returns the authenticated user, answering 401 when there is none.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
