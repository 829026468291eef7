// В этом файле описаны методы клиента для работы
// с эндпоинтами аутентификации: регистрация, вход, обновление токена,
// проверка токена и список пользователей.
package api

import "github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/models"

// Register выполняет регистрацию пользователя на сервере.
//
// Метод отправляет POST запрос на /api/auth/register и возвращает сообщение сервера.
// Токены при регистрации не выдаются, после неё нужен Login.
func (c *Client) Register(name, email, password, confirm string) (string, error) {
	var resp models.MessageResponse
	err := c.PostJSON("/api/auth/register", models.RegisterRequest{
		Name:            name,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	}, &resp, "")
	return resp.Message, err
}

// Login выполняет вход пользователя и получает пару токенов.
func (c *Client) Login(email, password string) (models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.PostJSON("/api/auth/login", models.LoginRequest{Email: email, Password: password}, &resp, "")
	return resp, err
}

// Refresh получает новый access токен.
//
// refresh токен передаётся в заголовке Authorization, тела у запроса нет.
func (c *Client) Refresh(refreshToken string) (models.RefreshResponse, error) {
	var resp models.RefreshResponse
	err := c.PostJSON("/api/auth/refresh", nil, &resp, refreshToken)
	return resp, err
}

// WhoAmI обращается к /api/auth/protected и возвращает приветствие сервера.
func (c *Client) WhoAmI(accessToken string) (string, error) {
	var resp models.MessageResponse
	err := c.GetJSON("/api/auth/protected", &resp, accessToken)
	return resp.Message, err
}

// Users возвращает список пользователей (id и имя).
func (c *Client) Users() ([]models.UserSummary, error) {
	var resp []models.UserSummary
	err := c.GetJSON("/api/user", &resp, "")
	return resp, err
}
