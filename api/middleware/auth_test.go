package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgAuth "github.com/kareemadel/printshop-backend/pkg/auth"
	"github.com/kareemadel/printshop-backend/pkg/config"
)

type fakeSessionChecker struct {
	known map[string]bool
}

func (f *fakeSessionChecker) HasSession(_ context.Context, accessID string) (bool, error) {
	return f.known[accessID], nil
}

func authTestJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "printshop-test",
		ExpirationMinutes: 15,
	}
}

func mintToken(t *testing.T, cfg config.JWTConfig, jti string) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		EmployeeID: uuid.New(),
		Username:   "admin",
		JTI:        jti,
	})
	require.NoError(t, err)
	return token
}

func TestAuthSeedsContext(t *testing.T) {
	cfg := authTestJWTConfig()
	checker := &fakeSessionChecker{known: map[string]bool{"session-1": true}}

	var gotEmployeeID, gotUsername string
	handler := Auth(cfg, checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmployeeID = EmployeeIDFromContext(r.Context())
		gotUsername = UsernameFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/years", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, "session-1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, gotEmployeeID)
	assert.Equal(t, "admin", gotUsername)
}

func TestAuthRejectsMissingOrBadToken(t *testing.T) {
	cfg := authTestJWTConfig()
	checker := &fakeSessionChecker{known: map[string]bool{}}
	handler := Auth(cfg, checker, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	cases := map[string]string{
		"missing":         "",
		"garbage":         "Bearer not-a-jwt",
		"revoked session": "Bearer " + mintToken(t, cfg, "unknown-session"),
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/years", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}

func TestCartSessionAssignsCookie(t *testing.T) {
	cfg := config.CartConfig{SessionTTL: time.Hour, CookieName: "printshop_cart"}

	var gotSession string
	handler := CartSession(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = CartSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.NotEmpty(t, gotSession)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "printshop_cart", cookies[0].Name)
	assert.Equal(t, gotSession, cookies[0].Value)

	// Subsequent requests keep the assigned session id.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	var second string
	CartSession(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		second = CartSessionFromContext(r.Context())
	})).ServeHTTP(rec, req)
	assert.Equal(t, gotSession, second)
}
