package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/IvanChernomyrdin/projectkeeper/internal/server/config"
	"github.com/IvanChernomyrdin/projectkeeper/internal/server/crypto"
	serr "github.com/IvanChernomyrdin/projectkeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/models"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService реализует бизнес-логику аутентификации.
//
// Ответственность:
//   - регистрация пользователей
//   - аутентификация (логин)
//   - выпуск и проверка токена сессии
//   - профиль текущего пользователя
//
// Токены не хранятся на сервере и истекают только по времени.
type AuthService struct {
	users UsersRepo

	hasher    crypto.Hasher
	jwt       crypto.JWTConfig
	minPwdLen int
}

// AuthResult — результат регистрации или логина.
type AuthResult struct {
	User  models.User
	Token string
}

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, cfg *config.Config) *AuthService {
	return &AuthService{
		users: users,

		hasher: crypto.Hasher{
			Algorithm: cfg.Password.Hasher,
			Argon2: crypto.Argon2Params{
				Time:      cfg.Password.Argon2.Time,
				MemoryKiB: cfg.Password.Argon2.MemoryKiB,
				Threads:   cfg.Password.Argon2.Threads,
				KeyLen:    cfg.Password.Argon2.KeyLen,
				SaltLen:   cfg.Password.Argon2.SaltLen,
			},
			BcryptCost: cfg.Password.Bcrypt.Cost,
		},
		jwt:       JWTConfigFrom(cfg.Auth),
		minPwdLen: cfg.Password.MinLength,
	}
}

// JWTConfigFrom переводит секцию auth конфига в параметры crypto.
func JWTConfigFrom(a config.AuthConfig) crypto.JWTConfig {
	return crypto.JWTConfig{
		Issuer:     a.Issuer,
		Audience:   a.Audience,
		SigningKey: a.JWT.SigningKey,
		AccessTTL:  a.AccessTTL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register регистрирует нового пользователя и сразу выдаёт токен.
//
// Валидация:
//   - email обязателен и должен быть валидным
//   - пароль обязателен и не короче password.min_length символов
//   - имя обязательно
//
// Ошибки:
//   - ErrInvalidInput при некорректных данных
//   - ErrAlreadyExists если email уже зарегистрирован
func (s *AuthService) Register(ctx context.Context, email, password, name string) (AuthResult, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	switch {
	case email == "" || strings.TrimSpace(password) == "" || name == "":
		return AuthResult{}, fmt.Errorf("%w: email, password and name are required", serr.ErrInvalidInput)
	case !emailRe.MatchString(email):
		return AuthResult{}, fmt.Errorf("%w: invalid email", serr.ErrInvalidInput)
	case utf8.RuneCountInString(password) < s.minPwdLen:
		return AuthResult{}, fmt.Errorf("%w: password must be at least %d characters", serr.ErrInvalidInput, s.minPwdLen)
	case s.hasher.MaxPasswordBytes() > 0 && len(password) > s.hasher.MaxPasswordBytes():
		return AuthResult{}, fmt.Errorf("%w: password must be at most %d bytes", serr.ErrInvalidInput, s.hasher.MaxPasswordBytes())
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, serr.ErrInternal
	}

	u, err := s.users.Create(ctx, email, name, hash)
	if err != nil {
		return AuthResult{}, err
	}

	token, err := crypto.NewAccessToken(u.ID, u.Email, s.jwt)
	if err != nil {
		return AuthResult{}, serr.ErrInternal
	}

	return AuthResult{User: u.Public(), Token: token}, nil
}

// Login аутентифицирует пользователя и выдаёт новый токен.
//
// Не раскрывает факт существования email: нет пользователя
// и неверный пароль дают одну и ту же ошибку.
//
// Ошибки:
//   - ErrInvalidInput
//   - ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return AuthResult{}, fmt.Errorf("%w: email and password are required", serr.ErrInvalidInput)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return AuthResult{}, serr.ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return AuthResult{}, serr.ErrInternal
	}
	if !ok {
		return AuthResult{}, serr.ErrInvalidCredentials
	}

	token, err := crypto.NewAccessToken(u.ID, u.Email, s.jwt)
	if err != nil {
		return AuthResult{}, serr.ErrInternal
	}

	return AuthResult{User: u.Public(), Token: token}, nil
}

// VerifyToken проверяет токен сессии и возвращает личность пользователя.
// Любая проблема с токеном — ErrUnauthorized.
func (s *AuthService) VerifyToken(token string) (crypto.Identity, error) {
	return crypto.ParseAccessToken(token, s.jwt)
}

// GetCurrentUser возвращает профиль владельца токена.
// Если пользователя уже нет в базе — ErrUnauthorized.
func (s *AuthService) GetCurrentUser(ctx context.Context, id crypto.Identity) (models.User, error) {
	u, err := s.users.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return models.User{}, serr.ErrUnauthorized
		}
		return models.User{}, err
	}
	return u.Public(), nil
}
