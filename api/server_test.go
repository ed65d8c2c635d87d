package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

type testEnv struct {
	router        *chi.Mux
	profiles      *fakeProfileStore
	projects      *fakeProjectStore
	skills        *fakeSkillStore
	projectSkills *fakeProjectSkillStore
	hasher        *auth.Hasher
	tokens        *auth.Tokens
}

func newTestEnv(t *testing.T, opts ...func(*config.Config)) *testEnv {
	t.Helper()

	tokens, err := auth.NewTokens(testSecret, 0)
	require.NoError(t, err)

	cfg := config.Config{
		AcceptedOrigins: []string{"*"},
		MaxBodyBytes:    1 << 20,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	env := &testEnv{
		profiles:      &fakeProfileStore{},
		projects:      &fakeProjectStore{},
		skills:        &fakeSkillStore{},
		projectSkills: &fakeProjectSkillStore{},
		hasher:        auth.NewHasher(bcrypt.MinCost),
		tokens:        tokens,
	}
	env.router = newRouter(stores{
		profiles:      env.profiles,
		projects:      env.projects,
		skills:        env.skills,
		projectSkills: env.projectSkills,
	}, env.hasher, env.tokens, withConfig(cfg), withStartupTime(time.Now()))
	return env
}

// do sends body as-is when it is a string and JSON-encodes it otherwise
func (e *testEnv) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// bearer returns a valid Authorization header pair for a fresh token
func (e *testEnv) bearer(t *testing.T) []string {
	t.Helper()
	token, err := e.tokens.Issue("3b241101-e2bb-4255-8caf-4136c566a962", "owner@example.com")
	require.NoError(t, err)
	return []string{"Authorization", "Bearer " + token}
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	assert.Equal(t, status, rec.Code, rec.Body.String())
	assert.Equal(t, message, decodeBody[ErrorResponse](t, rec).Error)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[HealthResponse](t, rec)
	assert.Equal(t, "OK", body.Status)
	_, err := time.Parse(time.RFC3339, body.Timestamp)
	assert.NoError(t, err)
	assert.NotEmpty(t, body.Uptime)
}

func TestUnknownEndpoints(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/nope"},
		{http.MethodGet, "/projects/123"},
		{http.MethodDelete, "/projects"},
		{http.MethodPut, "/profile"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.path, nil)
			assertError(t, rec, http.StatusNotFound, "Endpoint not found")
		})
	}
}

func TestLogInternalServerErrors_RecoversPanic(t *testing.T) {
	handler := LogInternalServerErrors(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assertError(t, rec, http.StatusInternalServerError, "Internal server error")
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, func(c *config.Config) {
		c.AcceptedOrigins = []string{"https://allowed.example"}
	})

	t.Run("allowed origin is reflected", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/health", nil, "Origin", "https://allowed.example")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://allowed.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("other origin gets no CORS headers", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/health", nil, "Origin", "https://evil.example")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight from other origin is rejected", func(t *testing.T) {
		rec := env.do(t, http.MethodOptions, "/projects", nil,
			"Origin", "https://evil.example",
			"Access-Control-Request-Method", http.MethodPost)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestMaxBodySize(t *testing.T) {
	env := newTestEnv(t, func(c *config.Config) {
		c.MaxBodyBytes = 32
	})

	rec := env.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"email":    "someone-with-a-long-address@example.com",
		"password": "secret-password",
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Zero(t, env.profiles.calls)
}

func TestInvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/signin", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, "json", body.Field)
}
