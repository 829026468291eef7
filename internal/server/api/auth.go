// HTTP-хендлеры регистрации, логина, refresh токенов и проверки доступа
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/middleware"
	serr "github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/models"
)

// Тексты ответов.
const (
	MsgRegistered         = "User Registered Successfully!"
	MsgMissingField       = "All fields are required"
	MsgInvalidEmail       = "Invalid email format"
	MsgPasswordMismatch   = "Passwords do not match"
	MsgNameTooLong        = "Name is too long"
	MsgPasswordTooLong    = "Password is too long"
	MsgInvalidInput       = "Invalid input"
	MsgAlreadyExists      = "User already exists"
	MsgBadJSON            = "Invalid JSON body"
	MsgInvalidCredentials = "Invalid Credentials"
	MsgInternal           = "Internal server error"
)

// registerMessage подбирает текст ответа 400 для ошибки регистрации.
func registerMessage(err error) string {
	switch {
	case errors.Is(err, serr.ErrMissingField):
		return MsgMissingField
	case errors.Is(err, serr.ErrInvalidEmail):
		return MsgInvalidEmail
	case errors.Is(err, serr.ErrPasswordMismatch):
		return MsgPasswordMismatch
	case errors.Is(err, serr.ErrNameTooLong):
		return MsgNameTooLong
	case errors.Is(err, serr.ErrPasswordTooLong):
		return MsgPasswordTooLong
	default:
		return MsgInvalidInput
	}
}

// Register обрабатывает регистрацию пользователя.
//
// Ответы:
//   - 201 Created: регистрация успешна, токены не выдаются;
//   - 400 Bad Request: неверный JSON, невалидные данные или email уже занят;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Register user
// @Description  Creates a new account. Password and confirm_password must match. No tokens are issued.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.RegisterRequest true "Register request"
// @Success      201 {object} models.MessageResponse
// @Failure      400 {object} models.MessageResponse "Invalid input, bad JSON or user already exists"
// @Failure      500 {object} models.MessageResponse "Internal server error"
// @Router       /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := h.decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, MsgBadJSON)
		return
	}

	err := h.Svc.Auth.Register(r.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, registerMessage(err))
		case errors.Is(err, serr.ErrAlreadyExists):
			WriteError(w, http.StatusBadRequest, MsgAlreadyExists)
		default:
			h.Log.Logger.Sugar().Errorw("register failed", "error", err)
			WriteError(w, http.StatusInternalServerError, MsgInternal)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, models.MessageResponse{Message: MsgRegistered})
}

// Login обрабатывает вход пользователя и выдачу пары токенов.
//
// Ответы:
//   - 200 OK: успешный вход;
//   - 400 Bad Request: неверный JSON;
//   - 401 Unauthorized: неверные учётные данные (не важно, email или пароль);
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Login
// @Description  Checks credentials and returns an access token and a refresh token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.LoginRequest true "Login request"
// @Success      200 {object} models.LoginResponse
// @Failure      400 {object} models.MessageResponse "Bad JSON"
// @Failure      401 {object} models.MessageResponse "Invalid Credentials"
// @Failure      500 {object} models.MessageResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := h.decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, MsgBadJSON)
		return
	}

	pair, err := h.Svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidCredentials):
			WriteError(w, http.StatusUnauthorized, MsgInvalidCredentials)
		default:
			h.Log.Logger.Sugar().Errorw("login failed", "error", err)
			WriteError(w, http.StatusInternalServerError, MsgInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, models.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh выдаёт новый access-токен по refresh-токену из заголовка Authorization.
//
// Ответы:
//   - 200 OK: новый access токен;
//   - 401 Unauthorized: токен отсутствует, просрочен, подделан или это access токен;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Refresh access token
// @Description  Issues a new access token. Send the refresh token as "Authorization: Bearer <refresh_token>".
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.RefreshResponse
// @Failure      401 {object} models.MessageResponse "Unauthorized"
// @Failure      500 {object} models.MessageResponse "Internal server error"
// @Router       /api/auth/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		middleware.WriteUnauthorized(w)
		return
	}

	access, err := h.Svc.Auth.Refresh(r.Context(), token)
	if err != nil {
		if errors.Is(err, serr.ErrUnauthorized) {
			middleware.WriteUnauthorized(w)
			return
		}
		h.Log.Logger.Sugar().Errorw("refresh failed", "error", err)
		WriteError(w, http.StatusInternalServerError, MsgInternal)
		return
	}

	WriteJSON(w, http.StatusOK, models.RefreshResponse{AccessToken: access})
}

// Protected приветствует владельца access-токена по имени.
//
// Ответы:
//   - 200 OK: {"message": "Hello, user <name>!"};
//   - 401 Unauthorized: токен невалиден или пользователь удалён;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Who am I
// @Description  Requires a valid access token. Returns a greeting with the user's display name.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.MessageResponse
// @Failure      401 {object} models.MessageResponse "Unauthorized"
// @Failure      500 {object} models.MessageResponse "Internal server error"
// @Router       /api/auth/protected [get]
func (h *Handler) Protected(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		middleware.WriteUnauthorized(w)
		return
	}

	u, err := h.Svc.Auth.WhoAmI(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrUnauthorized), errors.Is(err, serr.ErrInvalidCredentials):
			middleware.WriteUnauthorized(w)
		default:
			h.Log.Logger.Sugar().Errorw("whoami failed", "error", err)
			WriteError(w, http.StatusInternalServerError, MsgInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("Hello, user %s!", u.Name),
	})
}
