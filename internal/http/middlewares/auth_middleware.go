package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mjayaraman27/eduhub/internal/auth"
	"github.com/mjayaraman27/eduhub/internal/config"
	"github.com/mjayaraman27/eduhub/internal/domain/user"
)

// Keep these interfaces small so tests can fake them easily.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type UserLoader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type AuthMiddleware struct {
	jwt   TokenVerifier
	users UserLoader
	log   *slog.Logger
}

func NewAuthMiddleware(jwt TokenVerifier, users UserLoader, log *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwt:   jwt,
		users: users,
		log:   log,
	}
}

// RequireAuth resolves the Bearer token to a stored user and stashes it on
// the gin context. Every failure renders the same 401 body so a caller can
// not probe which check rejected it; the reason only goes to the log.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			m.reject(c, auth.ErrMissingCredential)
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if raw == "" {
			m.reject(c, auth.ErrMissingCredential)
			return
		}

		claims, err := m.jwt.Verify(raw)
		if err != nil {
			m.reject(c, err)
			return
		}

		cctx, cancel := config.WithTimeout(2 * time.Second)
		defer cancel()

		u, err := m.users.GetByEmail(cctx, claims.Subject)

		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				// token subject no longer exists (deleted after issue)
				m.reject(c, auth.ErrUnknownSubject)
				return
			}

			m.log.ErrorContext(c.Request.Context(), "auth_user_lookup_failed", "err", err)

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{
					"code":    "internal_error",
					"message": "Could not resolve user",
				},
			})
			return
		}

		c.Set(CtxUser, u)

		c.Next()
	}
}

func (m *AuthMiddleware) reject(c *gin.Context, reason error) {
	reqID, _ := c.Get(CtxRequestID)

	m.log.InfoContext(c.Request.Context(), "auth_rejected",
		"reason", reason.Error(),
		"request_id", reqID,
	)

	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "unauthorized",
			"message": "Invalid or missing credentials.",
		},
	})
}

// UserFromContext returns the user stashed by RequireAuth.
func UserFromContext(c *gin.Context) (user.User, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return user.User{}, false
	}

	u, ok := v.(user.User)
	return u, ok
}
