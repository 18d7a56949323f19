package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/projectkeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/projectkeeper/internal/server/middleware"
	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/models"
)

var testCfg = crypto.JWTConfig{
	Issuer:     "issuer",
	Audience:   "aud",
	SigningKey: "supersecretkeysupersecretkey123456",
	AccessTTL:  time.Minute,
}

func newVerifier() *middleware.JWTVerifier {
	return middleware.NewJWTVerifier(middleware.VerifyFunc(func(token string) (crypto.Identity, error) {
		return crypto.ParseAccessToken(token, testCfg)
	}))
}

// Вспомогательная функция для JWT
func makeToken(t *testing.T, key, sub, iss, aud string, exp time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   sub,
		Issuer:    iss,
		Audience:  []string{aud},
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func serve(t *testing.T, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	called := false
	handler := newVerifier().AuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr, called
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body.Error
}

// Успех
func TestAuthMiddleware_OK(t *testing.T) {
	userID := uuid.New()
	token, err := crypto.NewAccessToken(userID, "a@b.io", testCfg)
	require.NoError(t, err)

	var got crypto.Identity
	handler := newVerifier().AuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.IdentityFromContext(r.Context())
		require.True(t, ok)
		got = id
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, userID, got.UserID)
	require.Equal(t, "a@b.io", got.Email)
}

// Нет токена
func TestAuthMiddleware_MissingToken(t *testing.T) {
	rr, called := serve(t, "")

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.False(t, called)
	require.Equal(t, "missing bearer token", errorMessage(t, rr))
}

// Не Bearer схема
func TestAuthMiddleware_WrongScheme(t *testing.T) {
	rr, called := serve(t, "Basic dXNlcjpwYXNz")

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.False(t, called)
}

// Истёкший токен
func TestAuthMiddleware_Expired(t *testing.T) {
	token := makeToken(t, testCfg.SigningKey, uuid.NewString(), "issuer", "aud", time.Now().Add(-time.Minute))

	rr, called := serve(t, "Bearer "+token)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.False(t, called)
	require.Equal(t, "token expired", errorMessage(t, rr))
}

func TestAuthMiddleware_InvalidTokens(t *testing.T) {
	exp := time.Now().Add(time.Minute)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "abc.def.ghi"},
		{"wrong key", makeToken(t, "anotherkeyanotherkeyanotherkey12345", uuid.NewString(), "issuer", "aud", exp)},
		{"wrong issuer", makeToken(t, testCfg.SigningKey, uuid.NewString(), "other", "aud", exp)},
		{"wrong audience", makeToken(t, testCfg.SigningKey, uuid.NewString(), "issuer", "other", exp)},
		{"empty subject", makeToken(t, testCfg.SigningKey, "", "issuer", "aud", exp)},
	}

	for _, tt := range tests {
		rr, called := serve(t, "Bearer "+tt.token)
		require.Equal(t, http.StatusUnauthorized, rr.Code, tt.name)
		require.False(t, called, tt.name)
		require.Equal(t, "invalid token", errorMessage(t, rr), tt.name)
	}
}

func TestExtractBearer(t *testing.T) {
	require.Equal(t, "abc", middleware.ExtractBearer("Bearer abc"))
	require.Equal(t, "abc", middleware.ExtractBearer("  bearer   abc  "))
	require.Empty(t, middleware.ExtractBearer("Bearer"))
	require.Empty(t, middleware.ExtractBearer("Token abc"))
	require.Empty(t, middleware.ExtractBearer(""))
}

func TestIdentityFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := middleware.IdentityFromContext(req.Context())
	require.False(t, ok)
}
