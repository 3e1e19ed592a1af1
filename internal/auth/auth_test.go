package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz-engine-service/internal/domain"
)

const testSecret = "a-long-enough-secret-for-tests"

func TestIssueAndParseToken(t *testing.T) {
	a := NewAuthenticator(testSecret)

	token, err := a.IssueToken("user-123", time.Minute)
	require.NoError(t, err)

	userID, err := a.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestParseTokenRejectsBadTokens(t *testing.T) {
	a := NewAuthenticator(testSecret)

	expired, err := a.IssueToken("user-123", -time.Minute)
	require.NoError(t, err)
	_, err = a.ParseToken(expired)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	foreign, err := NewAuthenticator("another-secret").IssueToken("user-123", time.Minute)
	require.NoError(t, err)
	_, err = a.ParseToken(foreign)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = a.ParseToken(noSubject)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = a.ParseToken("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMiddleware(t *testing.T) {
	a := NewAuthenticator(testSecret)
	var seen string
	var rejected error
	handler := a.Middleware(func(w http.ResponseWriter, _ *http.Request, err error) {
		rejected = err
		w.WriteHeader(http.StatusUnauthorized)
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("anonymous", func(t *testing.T) {
		seen, rejected = "unset", nil
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "", seen)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := a.IssueToken("user-1", time.Minute)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "user-1", seen)
	})

	t.Run("invalid token", func(t *testing.T) {
		seen, rejected = "unset", nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unset", seen)
		assert.True(t, errors.Is(rejected, domain.ErrUnauthorized))
	})
}
