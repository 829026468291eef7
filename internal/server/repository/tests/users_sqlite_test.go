package tests

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/config"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/models"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/repository"
	serr "github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/errors"
)

// newSQLiteRepo поднимает файловую SQLite с применёнными миграциями.
func newSQLiteRepo(t *testing.T) (*repository.UsersRepository, *sql.DB) {
	t.Helper()

	migrations, err := filepath.Abs(filepath.Join("..", "..", "..", "..", "migrations", config.DriverSQLite))
	require.NoError(t, err)

	cfg := &config.Config{
		DB: config.DBConfig{
			Driver: config.DriverSQLite,
			DSN:    filepath.Join(t.TempDir(), "users.db"),
		},
		Migrations: config.MigrationsConfig{Enabled: true, Path: migrations},
	}

	db, err := config.InitDB(context.Background(), cfg, zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return repository.NewUsersRepository(db, config.DriverSQLite), db
}

func TestSQLite_CreateAndGet(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	u := newUser()
	id, err := repo.Create(ctx, u)
	require.NoError(t, err)
	require.Positive(t, id)

	byEmail, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, id, byEmail.ID)
	require.Equal(t, u.UID, byEmail.UID)
	require.Equal(t, u.PasswordHash, byEmail.PasswordHash)

	byUID, err := repo.GetByUID(ctx, u.UID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byUID.Email)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, serr.ErrNotFound)

	_, err = repo.GetByUID(ctx, uuid.New())
	require.ErrorIs(t, err, serr.ErrNotFound)
}

// Повторный email отбивается ограничением UNIQUE, первая запись не меняется.
func TestSQLite_DuplicateEmail(t *testing.T) {
	repo, db := newSQLiteRepo(t)
	ctx := context.Background()

	first := newUser()
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)

	second := newUser()
	second.Name = "Mallory"
	second.PasswordHash = "other"
	_, err = repo.Create(ctx, second)
	require.ErrorIs(t, err, serr.ErrAlreadyExists)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	require.Equal(t, 1, n)

	got, err := repo.GetByEmail(ctx, first.Email)
	require.NoError(t, err)
	require.Equal(t, "Alice", got.Name)
	require.Equal(t, "hash", got.PasswordHash)
}

// Одновременные регистрации одного email: ровно одна успешная.
func TestSQLite_ConcurrentDuplicateEmail(t *testing.T) {
	repo, db := newSQLiteRepo(t)
	ctx := context.Background()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok, dup   int
		unexpects []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u := newUser()
			u.Name = fmt.Sprintf("user-%d", i)
			_, err := repo.Create(ctx, u)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, serr.ErrAlreadyExists):
				dup++
			default:
				unexpects = append(unexpects, err)
			}
		}(i)
	}
	wg.Wait()

	require.Empty(t, unexpects)
	require.Equal(t, 1, ok)
	require.Equal(t, workers-1, dup)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestSQLite_List(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, users)

	for _, name := range []string{"Alice", "Bob"} {
		_, err := repo.Create(ctx, &models.User{
			UID:          uuid.New(),
			Name:         name,
			Email:        name + "@example.com",
			PasswordHash: "hash",
		})
		require.NoError(t, err)
	}

	users, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "Alice", users[0].Name)
	require.Equal(t, "Bob", users[1].Name)
	require.Less(t, users[0].ID, users[1].ID)
}
