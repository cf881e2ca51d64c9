package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mjayaraman27/eduhub/internal/http/middlewares"
)

// APIError is the envelope every failing endpoint writes under "error".
type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

// RespondError stamps the envelope with the request id so a client report
// can be matched to its log line.
func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.JSON(status, gin.H{"error": APIError{
		Code:      code,
		Message:   message,
		RequestID: requestIDFrom(ctx),
		Details:   details,
	}})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, nil)
}

func RespondConflict(ctx *gin.Context, code, message string) {
	RespondError(ctx, http.StatusConflict, code, message, nil)
}

// RespondUnAuthorized writes the one 401 body every auth failure shares.
// No requestId and no details: the body must not vary with the cause.
func RespondUnAuthorized(ctx *gin.Context) {
	ctx.Header("WWW-Authenticate", "Bearer")

	ctx.JSON(http.StatusUnauthorized, gin.H{
		"error": APIError{
			Code:    "unauthorized",
			Message: "Invalid or missing credentials.",
		},
	})
}

func requestIDFrom(ctx *gin.Context) string {
	if id := ctx.GetString(middlewares.CtxRequestID); id != "" {
		return id
	}

	// requests that bypassed the middleware may still carry a proxy id
	return ctx.GetHeader("X-Request-Id")
}
