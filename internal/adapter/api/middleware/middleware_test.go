package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/adapter/repository"
	"marketplace/internal/domain/entity"
	"marketplace/internal/infrastructure/ratelimit"
)

type stubVerifier map[string]string

func (v stubVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	if uid, ok := v[token]; ok {
		return uid, nil
	}
	return "", errors.New("bad token")
}

func newAuth(t *testing.T, verifier TokenVerifier) *AuthMiddleware {
	t.Helper()
	users := repository.NewKVUserRepository(repository.NewMemoryStorage())
	require.NoError(t, users.Save(context.Background(), &entity.User{ID: "alice", Name: "Alice"}))
	require.NoError(t, users.Save(context.Background(), &entity.User{ID: "root", Name: "Admin", Role: entity.RoleAdmin}))
	return NewAuthMiddleware(verifier, users)
}

func run(mw echo.MiddlewareFunc, req *http.Request) (*httptest.ResponseRecorder, *entity.User) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *entity.User
	h := mw(func(c echo.Context) error {
		seen = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	})
	_ = h(c)
	return rec, seen
}

func TestAuthenticate_Bearer(t *testing.T) {
	auth := newAuth(t, stubVerifier{"tok-1": "alice"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rec, user := run(auth.Authenticate, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.ID)
}

func TestAuthenticate_Rejects(t *testing.T) {
	auth := newAuth(t, stubVerifier{"tok-1": "alice", "tok-ghost": "ghost"})

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"wrong scheme", "Basic tok-1"},
		{"bad token", "Bearer nope"},
		{"unknown user", "Bearer tok-ghost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec, user := run(auth.Authenticate, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Nil(t, user)
		})
	}
}

func TestAuthenticate_HeaderAndQuery(t *testing.T) {
	auth := newAuth(t, HeaderVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(UserIDHeader, "alice")
	_, user := run(auth.Authenticate, req)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.ID)

	req = httptest.NewRequest(http.MethodGet, "/v1/ws?token=root", nil)
	_, user = run(auth.Authenticate, req)
	require.NotNil(t, user)
	assert.True(t, user.IsAdmin())
}

func TestOptional(t *testing.T) {
	auth := newAuth(t, HeaderVerifier{})

	rec, user := run(auth.Optional, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, user)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(UserIDHeader, "ghost")
	rec, user = run(auth.Optional, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, user)
}

func TestAdminOnly(t *testing.T) {
	auth := newAuth(t, HeaderVerifier{})
	chain := func(next echo.HandlerFunc) echo.HandlerFunc {
		return auth.Authenticate(NewAdminMiddleware().AdminOnly(next))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(UserIDHeader, "alice")
	rec, _ := run(chain, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(UserIDHeader, "root")
	rec, _ = run(chain, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit(t *testing.T) {
	rl := ratelimit.NewRateLimiter(map[string]ratelimit.Policy{
		"ping": {Burst: 2, Every: time.Minute},
	})
	mw := RateLimit(rl, "ping")

	for i := 0; i < 2; i++ {
		rec, _ := run(mw, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, _ := run(mw, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), `"retry_after"`)
}
