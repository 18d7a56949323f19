// Package crypto содержит криптографические примитивы сервера:
//   - хэширование и проверку паролей (argon2id, bcrypt);
//   - выпуск и проверку JWT токенов сессии (HS256, iss/aud, срок жизни).
package crypto

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	serr "github.com/IvanChernomyrdin/projectkeeper/internal/shared/errors"
)

// JWTConfig описывает параметры выпуска и проверки токена сессии.
type JWTConfig struct {
	// Issuer — значение поля iss. Если задан, проверяется при разборе.
	Issuer string
	// Audience — значение поля aud. Если задан, проверяется при разборе.
	Audience string
	// SigningKey — секретный ключ для подписи токена (HS256).
	SigningKey string
	// AccessTTL — срок жизни токена.
	AccessTTL time.Duration
}

// Claims — содержимое токена сессии.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Identity — личность пользователя, извлечённая из валидного токена.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// NewAccessToken создаёт и подписывает токен сессии для пользователя.
//
// Токен содержит sub (userID), email, iss, aud, iat, exp и jti.
// Используется алгоритм подписи HS256.
func NewAccessToken(userID uuid.UUID, email string, cfg JWTConfig) (string, error) {
	now := time.Now()

	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    cfg.Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTTL)),
		},
	}
	if cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.Audience}
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}

// ParseAccessToken проверяет подпись, срок действия, issuer и audience токена
// и возвращает Identity.
//
// Любая ошибка содержит serr.ErrUnauthorized; для просроченного токена
// дополнительно errors.Is(err, jwt.ErrTokenExpired) == true.
func ParseAccessToken(tokenStr string, cfg JWTConfig) (Identity, error) {
	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return Identity{}, serr.ErrUnauthorized
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	claims := &Claims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.SigningKey), nil
	})
	if err != nil {
		return Identity{}, errors.Join(serr.ErrUnauthorized, err)
	}

	userID, err := uuid.Parse(strings.TrimSpace(claims.Subject))
	if err != nil {
		return Identity{}, errors.Join(serr.ErrUnauthorized, errors.New("invalid token subject"))
	}

	id := Identity{
		UserID:  userID,
		Email:   claims.Email,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}
