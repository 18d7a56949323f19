package models

import (
	"time"

	"github.com/google/uuid"
)

// User — публичные поля пользователя. Хэш пароля сюда не попадает никогда.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterRequest описывает тело запроса регистрации пользователя.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest описывает тело запроса входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse — ответ регистрации и логина: пользователь и токен сессии.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// MeResponse — ответ GET /api/auth/me.
type MeResponse struct {
	User User `json:"user"`
}

// ErrorResponse стандартный формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}
