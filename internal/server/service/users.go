package service

import (
	"context"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/models"
)

// UsersService отдаёт публичный список пользователей (id и имя).
type UsersService struct {
	users UsersRepo
}

func NewUsersService(users UsersRepo) *UsersService {
	return &UsersService{users: users}
}

func (s *UsersService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return users, nil
}
