package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signClaims(t *testing.T, secret string, claims auth.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthenticate_RejectsBeforeHandlerRuns(t *testing.T) {
	env := newTestEnv(t)

	valid, err := env.tokens.Issue("3b241101-e2bb-4255-8caf-4136c566a962", "owner@example.com")
	require.NoError(t, err)

	expired := signClaims(t, testSecret, auth.Claims{
		UserID: "3b241101-e2bb-4255-8caf-4136c566a962",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	})
	noUserID := signClaims(t, testSecret, auth.Claims{
		Email: "owner@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	otherKey := signClaims(t, "another-secret", auth.Claims{
		UserID: "3b241101-e2bb-4255-8caf-4136c566a962",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	numericUserID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": 42,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	segments := strings.Split(valid, ".")
	sig := []byte(segments[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := strings.Join([]string{segments[0], segments[1], string(sig)}, ".")

	tests := []struct {
		name    string
		header  []string
		message string
	}{
		{"no header", nil, "Authorization header required"},
		{"scheme only", []string{"Authorization", "Bearer"}, "Invalid authorization header format"},
		{"empty token segment", []string{"Authorization", "Bearer "}, "Invalid authorization header format"},
		{"garbage token", []string{"Authorization", "Bearer not-a-jwt"}, "Invalid or expired token"},
		{"expired token", []string{"Authorization", "Bearer " + expired}, "Invalid or expired token"},
		{"tampered signature", []string{"Authorization", "Bearer " + tampered}, "Invalid or expired token"},
		{"other signing key", []string{"Authorization", "Bearer " + otherKey}, "Invalid or expired token"},
		{"no userId claim", []string{"Authorization", "Bearer " + noUserID}, "Invalid token"},
		{"numeric userId claim", []string{"Authorization", "Bearer " + numericUserID}, "Invalid token"},
	}

	routes := []struct {
		path string
		body map[string]string
	}{
		{"/profile", map[string]string{"name": "Mallory", "email": "owner@example.com"}},
		{"/projects", map[string]string{"title": "x", "profileId": "3b241101-e2bb-4255-8caf-4136c566a962"}},
		{"/projects/from-github", map[string]string{"githubUrl": "https://github.com/acme/widget", "profileId": "3b241101-e2bb-4255-8caf-4136c566a962"}},
	}

	for _, route := range routes {
		for _, tt := range tests {
			t.Run(route.path+"/"+tt.name, func(t *testing.T) {
				rec := env.do(t, http.MethodPost, route.path, route.body, tt.header...)
				assert.Equal(t, http.StatusUnauthorized, rec.Code)
				assert.JSONEq(t, `{"error":"`+tt.message+`"}`, rec.Body.String())
			})
		}
	}

	assert.Zero(t, env.profiles.calls, "no profile was touched")
	assert.Zero(t, env.projects.writeCount(), "no project was written")
}

func TestAuthenticate_SchemeIsNotChecked(t *testing.T) {
	env := newTestEnv(t)

	token, err := env.tokens.Issue("3b241101-e2bb-4255-8caf-4136c566a962", "owner@example.com")
	require.NoError(t, err)

	rec := env.do(t, http.MethodPost, "/profile",
		map[string]string{"name": "Owner", "email": "owner@example.com"},
		"Authorization", "Token "+token)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestAuthenticate_PutsIdentityInContext(t *testing.T) {
	env := newTestEnv(t)
	middleware := newAuthMiddleware(env.tokens)

	token, err := env.tokens.Issue("user-1", "user@example.com")
	require.NoError(t, err)

	var got Identity
	handler := middleware.authenticate(withIdentity(middleware.responder, func(w http.ResponseWriter, r *http.Request, caller Identity) {
		got = caller
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, Identity{UserID: "user-1", Email: "user@example.com"}, got)
}

func TestWithIdentity_RequiresAuthenticate(t *testing.T) {
	called := false
	handler := withIdentity(NewResponder(zerolog.Nop()), func(http.ResponseWriter, *http.Request, Identity) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}
