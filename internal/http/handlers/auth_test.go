package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mjayaraman27/eduhub/internal/auth"
	"github.com/mjayaraman27/eduhub/internal/domain/user"
	"github.com/mjayaraman27/eduhub/internal/http/handlers"
	"github.com/mjayaraman27/eduhub/internal/http/middlewares"
	"github.com/mjayaraman27/eduhub/internal/security"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

// Fake store implementations of the handlers.UserReader / handlers.UserWriter interfaces

type fakeUserStore struct {
	createFn     func(ctx context.Context, u user.User) (user.User, error)
	getByEmailFn func(ctx context.Context, email string) (user.User, error)
}

func (f *fakeUserStore) Create(ctx context.Context, u user.User) (user.User, error) {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}

	u.ID = bson.NewObjectID()
	return u, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}

	return user.User{}, user.ErrNotFound
}

// small helper function which returns the gin engine to mount one handler per test

func setupRouter(method, path string, h ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h...)

	return r
}

func newTestJWT() *auth.Manager {
	return auth.NewManager("test-secret", 15*time.Minute)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()

	hash, err := security.HashPassword(plain)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	return hash
}

// errorEnvelope matches the error body every handler writes.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, body []byte) errorEnvelope {
	t.Helper()

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("failed to unmarshal error body %q: %v", body, err)
	}

	return env
}

// Signup tests

func TestSignupHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		storeSetUp     func(*fakeUserStore)
		wantStatusCode int
		wantCode       string
		wantMessage    string
	}{
		{
			name:           "success",
			body:           `{"email": "sam@example.com", "username": "sam", "password": "secret1"}`,
			wantStatusCode: http.StatusOK,
		},
		{
			name: "missing_fields",
			body: `{"email": "sam@example.com"}`,
			storeSetUp: func(f *fakeUserStore) {
				// binding fails before the store is reached
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid_email",
			body:           `{"email": "not-an-email", "username": "sam", "password": "secret1"}`,
			wantStatusCode: http.StatusBadRequest,
			wantCode:       "invalid_request",
			wantMessage:    "Invalid email format",
		},
		{
			name:           "short_password",
			body:           `{"email": "sam@example.com", "username": "sam", "password": "abc"}`,
			wantStatusCode: http.StatusBadRequest,
			wantCode:       "invalid_request",
			wantMessage:    "Password must be at least 6 characters long",
		},
		{
			name: "email_or_username_taken",
			body: `{"email": "sam@example.com", "username": "sam", "password": "secret1"}`,
			storeSetUp: func(f *fakeUserStore) {
				f.createFn = func(ctx context.Context, u user.User) (user.User, error) {
					return user.User{}, user.ErrEmailOrUsernameTaken
				}
			},
			wantStatusCode: http.StatusBadRequest,
			wantCode:       "email_or_username_taken",
			wantMessage:    "Email or username already registered",
		},
		{
			name: "store_error",
			body: `{"email": "sam@example.com", "username": "sam", "password": "secret1"}`,
			storeSetUp: func(f *fakeUserStore) {
				f.createFn = func(ctx context.Context, u user.User) (user.User, error) {
					return user.User{}, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			store := &fakeUserStore{}

			if tt.storeSetUp != nil {
				tt.storeSetUp(store)
			}

			h := handlers.NewAuthHandler(store, store, newTestJWT(), nil)
			r := setupRouter(http.MethodPost, "/api/auth/signup", h.Signup)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantCode != "" {
				env := decodeError(t, w.Body.Bytes())

				if env.Error.Code != tt.wantCode {
					t.Fatalf("got error code %q, want %q", env.Error.Code, tt.wantCode)
				}
				if env.Error.Message != tt.wantMessage {
					t.Fatalf("got error message %q, want %q", env.Error.Message, tt.wantMessage)
				}
			}
		})
	}
}

func TestSignupHandler_IssuesUsableToken(t *testing.T) {
	store := &fakeUserStore{}
	jwtManager := newTestJWT()

	h := handlers.NewAuthHandler(store, store, jwtManager, nil)
	r := setupRouter(http.MethodPost, "/api/auth/signup", h.Signup)

	body := `{"email": "sam@example.com", "username": "sam", "password": "secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp handlers.TokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.TokenType != "bearer" {
		t.Fatalf("got token_type %q, want %q", resp.TokenType, "bearer")
	}

	if resp.User.Email != "sam@example.com" {
		t.Fatalf("got user email %q, want %q", resp.User.Email, "sam@example.com")
	}

	claims, err := jwtManager.Verify(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}

	if claims.Subject != "sam@example.com" {
		t.Fatalf("token subject %q, want %q", claims.Subject, "sam@example.com")
	}
}

// Login tests

func TestLoginHandler(t *testing.T) {
	hash := mustHash(t, "secret1")

	stored := user.User{
		ID:           bson.NewObjectID(),
		Email:        "sam@example.com",
		Username:     "sam",
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	tests := []struct {
		name           string
		body           string
		storeSetUp     func(*fakeUserStore)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"email": "sam@example.com", "password": "secret1"}`,
			storeSetUp: func(f *fakeUserStore) {
				f.getByEmailFn = func(ctx context.Context, email string) (user.User, error) {
					return stored, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "wrong_password",
			body: `{"email": "sam@example.com", "password": "wrong-password"}`,
			storeSetUp: func(f *fakeUserStore) {
				f.getByEmailFn = func(ctx context.Context, email string) (user.User, error) {
					return stored, nil
				}
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "unknown_email",
			body: `{"email": "nobody@example.com", "password": "secret1"}`,
			storeSetUp: func(f *fakeUserStore) {
				f.getByEmailFn = func(ctx context.Context, email string) (user.User, error) {
					return user.User{}, user.ErrNotFound
				}
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "missing_fields",
			body:           `{"email": "sam@example.com"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "store_error",
			body: `{"email": "sam@example.com", "password": "secret1"}`,
			storeSetUp: func(f *fakeUserStore) {
				f.getByEmailFn = func(ctx context.Context, email string) (user.User, error) {
					return user.User{}, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			store := &fakeUserStore{}

			if tt.storeSetUp != nil {
				tt.storeSetUp(store)
			}

			h := handlers.NewAuthHandler(store, store, newTestJWT(), nil)
			r := setupRouter(http.MethodPost, "/api/auth/login", h.Login)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

// An attacker must not be able to tell an unknown email from a wrong
// password: both rejections must be byte-identical.
func TestLoginHandler_RejectionsIndistinguishable(t *testing.T) {
	hash := mustHash(t, "secret1")

	doLogin := func(store *fakeUserStore, body string) *httptest.ResponseRecorder {
		h := handlers.NewAuthHandler(store, store, newTestJWT(), nil)
		r := setupRouter(http.MethodPost, "/api/auth/login", h.Login)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	unknownEmail := doLogin(&fakeUserStore{
		getByEmailFn: func(ctx context.Context, email string) (user.User, error) {
			return user.User{}, user.ErrNotFound
		},
	}, `{"email": "nobody@example.com", "password": "secret1"}`)

	wrongPassword := doLogin(&fakeUserStore{
		getByEmailFn: func(ctx context.Context, email string) (user.User, error) {
			return user.User{Email: email, PasswordHash: hash}, nil
		},
	}, `{"email": "sam@example.com", "password": "wrong-password"}`)

	if unknownEmail.Code != http.StatusUnauthorized || wrongPassword.Code != http.StatusUnauthorized {
		t.Fatalf("got statuses %d and %d, want both %d",
			unknownEmail.Code, wrongPassword.Code, http.StatusUnauthorized)
	}

	if !bytes.Equal(unknownEmail.Body.Bytes(), wrongPassword.Body.Bytes()) {
		t.Fatalf("rejection bodies differ:\n%s\n%s",
			unknownEmail.Body.String(), wrongPassword.Body.String())
	}

	for _, w := range []*httptest.ResponseRecorder{unknownEmail, wrongPassword} {
		if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
			t.Fatalf("got WWW-Authenticate %q, want %q", got, "Bearer")
		}
	}
}

// Me tests

func TestMeHandler(t *testing.T) {
	stored := user.User{
		ID:        bson.NewObjectID(),
		Email:     "sam@example.com",
		Username:  "sam",
		CreatedAt: time.Now().UTC(),
	}

	store := &fakeUserStore{}
	h := handlers.NewAuthHandler(store, store, newTestJWT(), nil)

	// stand-in for the auth middleware
	withUser := func(c *gin.Context) {
		c.Set(middlewares.CtxUser, stored)
	}

	r := setupRouter(http.MethodGet, "/api/auth/me", withUser, h.Me)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var got user.Public
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if got.ID != stored.ID.Hex() {
		t.Fatalf("got id %q, want %q", got.ID, stored.ID.Hex())
	}
	if got.Email != stored.Email || got.Username != stored.Username {
		t.Fatalf("got %+v, want projection of %+v", got, stored)
	}
}

func TestMeHandler_NoResolvedUser(t *testing.T) {
	store := &fakeUserStore{}
	h := handlers.NewAuthHandler(store, store, newTestJWT(), nil)

	r := setupRouter(http.MethodGet, "/api/auth/me", h.Me)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusUnauthorized, w.Body.String())
	}

	env := decodeError(t, w.Body.Bytes())
	if env.Error.Code != "unauthorized" {
		t.Fatalf("got error code %q, want %q", env.Error.Code, "unauthorized")
	}
}
