package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mjayaraman27/eduhub/internal/auth"
	"github.com/mjayaraman27/eduhub/internal/config"
	"github.com/mjayaraman27/eduhub/internal/domain/user"
	"github.com/mjayaraman27/eduhub/internal/http/middlewares"
	"github.com/mjayaraman27/eduhub/internal/observability"
	"github.com/mjayaraman27/eduhub/internal/security"
	"github.com/mjayaraman27/eduhub/internal/validate"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, u user.User) (user.User, error)
}

type AuthHandler struct {
	users  UserReader
	writer UserWriter
	jwt    *auth.Manager
	prom   *observability.Prom
}

func NewAuthHandler(users UserReader, writer UserWriter, jwtManager *auth.Manager, prom *observability.Prom) *AuthHandler {
	return &AuthHandler{
		users:  users,
		writer: writer,
		jwt:    jwtManager,
		prom:   prom,
	}
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the success shape of signup and login.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        user.Public `json:"user"`
}

func (h *AuthHandler) Signup(ctx *gin.Context) {
	var req SignupRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if !validate.Email(req.Email) {
		h.countSignup("invalid")
		RespondBadRequest(ctx, "Invalid email format", nil)
		return
	}

	if ok, reason := validate.Password(req.Password); !ok {
		h.countSignup("invalid")
		RespondBadRequest(ctx, reason, nil)
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	u, err := h.writer.Create(cctx, user.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})

	if err != nil {
		if errors.Is(err, user.ErrEmailOrUsernameTaken) {
			h.countSignup("conflict")
			RespondError(ctx, http.StatusBadRequest, "email_or_username_taken", "Email or username already registered", nil)
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	accessToken, err := h.jwt.Issue(u.Email)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	h.countSignup("ok")

	ctx.JSON(http.StatusOK, TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		User:        u.Public(),
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for the lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// unknown email and wrong password must be indistinguishable
			h.countLogin("rejected")
			RespondUnAuthorized(ctx)
			return
		}

		RespondInternal(ctx, "Could not log in")
		return
	}

	if err := security.CheckPassword(foundUser.PasswordHash, req.Password); err != nil {
		h.countLogin("rejected")
		RespondUnAuthorized(ctx)
		return
	}

	accessToken, err := h.jwt.Issue(foundUser.Email)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	h.countLogin("ok")

	ctx.JSON(http.StatusOK, TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		User:        foundUser.Public(),
	})
}

// Me returns the identity resolved by the auth middleware.
func (h *AuthHandler) Me(ctx *gin.Context) {
	u, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx)
		return
	}

	ctx.JSON(http.StatusOK, u.Public())
}

func (h *AuthHandler) countLogin(result string) {
	if h.prom != nil {
		h.prom.LoginsTotal.WithLabelValues(result).Inc()
	}
}

func (h *AuthHandler) countSignup(result string) {
	if h.prom != nil {
		h.prom.SignupsTotal.WithLabelValues(result).Inc()
	}
}
