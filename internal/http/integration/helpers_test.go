package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mjayaraman27/eduhub/internal/config"
	"github.com/mjayaraman27/eduhub/internal/domain/subject"
	"github.com/mjayaraman27/eduhub/internal/domain/user"
	apphttp "github.com/mjayaraman27/eduhub/internal/http"
	"github.com/mjayaraman27/eduhub/internal/repo/memory"
)

func testConfig() config.Config {
	return config.Config{
		Env:                 "test",
		Port:                0,
		DatabaseName:        "eduhub_test",
		JWTSecret:           "test-secret-key",
		JWTAccessTTLMinutes: 60,
		CORSOrigins:         []string{"http://localhost:3000"},
	}
}

// testEnv is a full router over memory stores, with the stores exposed so
// tests can reach behind the API.
type testEnv struct {
	router    *gin.Engine
	users     *memory.UsersRepo
	subjects  *memory.SubjectsRepo
	materials *memory.MaterialsRepo
	seeded    []subject.Subject
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	users := memory.NewUsersRepo()
	subjects := memory.NewSubjectsRepo()
	materials := memory.NewMaterialsRepo()

	seeded := subjects.Seed(
		subject.Subject{Name: "Internet of Things", Code: "IOT", Icon: "🌐"},
		subject.Subject{Name: "Big Data Analytics", Code: "BDA", Icon: "📊"},
	)

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	stores := apphttp.Stores{
		Users:     users,
		Subjects:  subjects,
		Materials: materials,
	}

	router := apphttp.NewRouterWithStores(logger, stores, nil, nil, testConfig(), nil)

	return &testEnv{
		router:    router,
		users:     users,
		subjects:  subjects,
		materials: materials,
		seeded:    seeded,
	}
}

// doRequest runs a request through the router. A non-empty token is sent as
// a bearer credential.
func doRequest(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))

	if method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func mustReadJSON[T any](t *testing.T, w *httptest.ResponseRecorder, out *T) {
	t.Helper()

	err := json.Unmarshal(w.Body.Bytes(), out)
	if err != nil {
		t.Fatalf("failed to unmarshal json: %v, body=%s", err, w.Body.String())
	}
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        user.Public `json:"user"`
}

type apiErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// signupUser registers an account and returns the issued token response.
func signupUser(t *testing.T, router http.Handler, email, username, password string) tokenResponse {
	t.Helper()

	body := `{"email":"` + email + `","username":"` + username + `","password":"` + password + `"}`

	w := doRequest(router, http.MethodPost, "/api/auth/signup", body, "")

	if w.Code != http.StatusOK {
		t.Fatalf("signup got status %d, body=%s", w.Code, w.Body.String())
	}

	var token tokenResponse
	mustReadJSON(t, w, &token)

	return token
}
