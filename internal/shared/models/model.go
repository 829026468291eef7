package models

// Модели HTTP API, общие для сервера и CLI-клиента.

// MessageResponse — ответ с текстовым сообщением.
//
// Используется для подтверждения регистрации, приветствия на /protected
// и для всех ошибок:
//
//	{"message": "Invalid Credentials"}
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterRequest — запрос на регистрацию.
//
// Используется в:
//
//	POST /api/auth/register
//
// Все поля обязательны, password и confirm_password должны совпадать.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest — запрос на вход.
//
// Используется в:
//
//	POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse — пара токенов, выдаваемая при входе.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse — новый access токен.
//
// Используется в:
//
//	POST /api/auth/refresh (refresh токен передаётся в Authorization: Bearer)
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// UserSummary — элемент списка пользователей.
//
// Используется в:
//
//	GET /api/user
type UserSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
