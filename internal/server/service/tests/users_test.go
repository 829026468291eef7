package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/models"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/service"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/errors"
)

func TestUsersService_List(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewUsersService(repo)

	want := []models.User{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}}
	repo.EXPECT().List(ctx).Return(want, nil)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestUsersService_List_Error(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewUsersService(repo)

	repo.EXPECT().List(ctx).Return(nil, errors.New("boom"))

	_, err := svc.List(ctx)
	require.ErrorIs(t, err, serr.ErrInternal)
}

func TestNewServices(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUsersRepo(ctrl)

	svcs := service.NewServices(service.Repositories{Users: repo}, newHasher(), newTokens())
	require.NotNil(t, svcs.Auth)
	require.NotNil(t, svcs.Users)
}
