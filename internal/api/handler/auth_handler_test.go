package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newsportal/internal/common/security"
	"newsportal/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRevoker struct {
	revoked map[string]time.Duration
}

func (f *fakeRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if f.revoked == nil {
		f.revoked = map[string]time.Duration{}
	}
	f.revoked[tokenID] = ttl
	return nil
}

func initHandlerTest(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey:     []byte("test-secret"),
		JWTExp:     time.Hour,
		CookieName: "user-token",
	}
	security.InitJWT()
}

func TestLogout_NoCookie(t *testing.T) {
	initHandlerTest(t)
	h := NewAuthHandler(nil, &fakeRevoker{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.logout(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_ClearsCookieAndRevokes(t *testing.T) {
	initHandlerTest(t)
	revoker := &fakeRevoker{}
	h := NewAuthHandler(nil, revoker)

	token, err := security.GenerateToken("u-1", "a@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "user-token", Value: token})
	rec := httptest.NewRecorder()
	h.logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, revoker.revoked, 1, "token id denylisted")
	for _, ttl := range revoker.revoked {
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Hour)
	}

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "user-token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge, "cookie instructed to expire")
}

func TestLogout_GarbageTokenStillClearsCookie(t *testing.T) {
	initHandlerTest(t)
	revoker := &fakeRevoker{}
	h := NewAuthHandler(nil, revoker)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "user-token", Value: "not.a.jwt"})
	rec := httptest.NewRecorder()
	h.logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, revoker.revoked, "nothing to denylist for an unverifiable token")
}
