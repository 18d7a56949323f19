// Серверная модель пользователя
package models

import (
	"time"

	"github.com/google/uuid"

	shared "github.com/IvanChernomyrdin/projectkeeper/internal/shared/models"
)

// User — строка таблицы users вместе с хэшем пароля.
// Наружу отдаётся только через Public().
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// Public возвращает пользователя без хэша пароля.
func (u User) Public() shared.User {
	return shared.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
