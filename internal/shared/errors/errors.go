// Package errors содержит общие доменные ошибки приложения
// и утилиты для error wrapping.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import (
	"errors"
	"fmt"
)

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован (токен невалиден, просрочен или другого типа)
	ErrUnauthorized = errors.New("unauthorized")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// ожидаемая ошибка
	ErrExpectedError = errors.New("expected error")
	// неожидаемая ошибка
	ErrUnexpectedError = errors.New("unexpected error")
)

// Уточнения ErrInvalidInput для регистрации.
// errors.Is(err, ErrInvalidInput) для них всегда true.
var (
	ErrMissingField     = fmt.Errorf("%w: missing field", ErrInvalidInput)
	ErrInvalidEmail     = fmt.Errorf("%w: invalid email", ErrInvalidInput)
	ErrPasswordMismatch = fmt.Errorf("%w: mismatch", ErrInvalidInput)
	ErrNameTooLong      = fmt.Errorf("%w: name too long", ErrInvalidInput)
	ErrPasswordTooLong  = fmt.Errorf("%w: password too long", ErrInvalidInput)
)
