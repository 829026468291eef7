// Package service содержит бизнес-логику аутентификации.
// Это прослойка между HTTP-обработчиками (api) и хранилищем учётных записей (repository).
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/errors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users UsersRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth  *AuthService
	Users *UsersService
}

// NewServices собирает все сервисы приложения.
// hasher и tokens создаются один раз в cmd/server по конфигу.
func NewServices(repos Repositories, hasher crypto.Hasher, tokens *crypto.TokenService) *Services {
	return &Services{
		Auth:  NewAuthService(repos.Users, hasher, tokens),
		Users: NewUsersService(repos.Users),
	}
}

// UsersRepo — хранилище учётных записей.
//
// Create атомарен: либо запись сохранена целиком, либо её нет.
// Дубликат email или uid возвращается как serr.ErrAlreadyExists,
// отсутствие записи в Get* — как serr.ErrNotFound.
type UsersRepo interface {
	Create(ctx context.Context, u *models.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUID(ctx context.Context, uid uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// internal приводит ошибку к serr.ErrInternal, сохраняя текст причины.
func internal(err error) error {
	if errors.Is(err, serr.ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %v", serr.ErrInternal, err)
}
