package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	revoked map[string]bool
}

func (f *fakeChecker) IsTokenRevoked(jti string) (bool, error) {
	return f.revoked[jti], nil
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func runMiddleware(checker TokenChecker, authorization string) (*httptest.ResponseRecorder, int64, bool) {
	var gotID int64
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/cases", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	Middleware(checker)(next).ServeHTTP(rec, req)
	return rec, gotID, gotOK
}

func TestMiddleware_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": 7,
		"jti":     "abc",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	rec, userID, ok := runMiddleware(&fakeChecker{}, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ok)
	assert.Equal(t, int64(7), userID)
}

func TestMiddleware_MissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	rec, _, _ := runMiddleware(&fakeChecker{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token := signToken(t, "other-secret", jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	rec, _, _ := runMiddleware(&fakeChecker{}, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	rec, _, _ := runMiddleware(&fakeChecker{}, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_RevokedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": 7,
		"jti":     "revoked-jti",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	rec, _, _ := runMiddleware(&fakeChecker{revoked: map[string]bool{"revoked-jti": true}}, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
