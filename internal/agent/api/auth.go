// В этом файле описаны методы клиента для работы
// с эндпоинтами аутентификации: регистрация, вход и получение
// информации о текущем пользователе.
package api

import "github.com/IvanChernomyrdin/projectkeeper/internal/shared/models"

// Register регистрирует пользователя и сразу получает токен сессии.
//
// Метод отправляет POST запрос на /api/auth/register.
// В случае ошибки возвращает непустую ошибку и пустой ответ.
func (c *Client) Register(email, password, name string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	req := models.RegisterRequest{Email: email, Password: password, Name: name}
	err := c.PostJSON("/api/auth/register", req, &resp, "")
	return resp, err
}

// Login выполняет вход пользователя и получает токен сессии.
//
// Метод отправляет POST запрос на /api/auth/login.
func (c *Client) Login(email, password string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.PostJSON("/api/auth/login", models.LoginRequest{Email: email, Password: password}, &resp, "")
	return resp, err
}

// Me запрашивает текущего пользователя по токену (GET /api/auth/me).
func (c *Client) Me(token string) (models.User, error) {
	var resp models.MeResponse
	if err := c.GetJSON("/api/auth/me", &resp, token); err != nil {
		return models.User{}, err
	}
	return resp.User, nil
}
