// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/IvanChernomyrdin/projectkeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/models"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// identityKey — ключ контекста, под которым хранится личность аутентифицированного пользователя.
const identityKey ctxKey = "identity"

// TokenVerifier проверяет токен сессии. Реализуется service.AuthService.
type TokenVerifier interface {
	VerifyToken(token string) (crypto.Identity, error)
}

// VerifyFunc позволяет использовать обычную функцию как TokenVerifier.
type VerifyFunc func(token string) (crypto.Identity, error)

func (f VerifyFunc) VerifyToken(token string) (crypto.Identity, error) {
	return f(token)
}

// JWTVerifier — гейт для защищённых маршрутов.
type JWTVerifier struct {
	tokens TokenVerifier
}

// NewJWTVerifier создаёт новый JWTVerifier поверх проверки токенов.
func NewJWTVerifier(tokens TokenVerifier) *JWTVerifier {
	return &JWTVerifier{tokens: tokens}
}

// IdentityFromContext извлекает личность аутентифицированного пользователя из контекста.
//
// Возвращает false, если запрос не прошёл через AuthMiddleware.
func IdentityFromContext(ctx context.Context) (crypto.Identity, bool) {
	id, ok := ctx.Value(identityKey).(crypto.Identity)
	return id, ok
}

// WithIdentity кладёт личность пользователя в контекст.
func WithIdentity(ctx context.Context, id crypto.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// AuthMiddleware возвращает HTTP middleware для проверки токена сессии.
//
// Middleware:
//   - ожидает заголовок Authorization: Bearer <token>
//   - проверяет подпись, срок действия, issuer и audience
//   - сохраняет crypto.Identity в context.Context
//
// В случае ошибки возвращает 401 с JSON-телом {"error": "..."}.
func (v *JWTVerifier) AuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := ExtractBearer(r.Header.Get("Authorization"))
			if tokenStr == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			id, err := v.tokens.VerifyToken(tokenStr)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					unauthorized(w, "token expired")
					return
				}
				unauthorized(w, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: msg})
}

// ExtractBearer извлекает JWT из заголовка Authorization.
//
// Ожидаемый формат:
//
//	Authorization: Bearer <token>
//
// Возвращает пустую строку, если формат некорректен.
func ExtractBearer(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
