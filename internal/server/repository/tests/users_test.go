package tests

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/config"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/models"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/repository"
	serr "github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/errors"
)

func newMockRepo(t *testing.T) (*repository.UsersRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewUsersRepository(db, config.DriverPostgres), mock
}

func newUser() *models.User {
	return &models.User{
		UID:          uuid.New(),
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
	}
}

// Успех: вставка в транзакции, commit
func TestUsersRepository_Create_OK(t *testing.T) {
	repo, mock := newMockRepo(t)
	u := newUser()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users \(uid, name, email, password\)\s+VALUES \(\$1, \$2, \$3, \$4\)`).
		WithArgs(u.UID, u.Name, u.Email, u.PasswordHash).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectCommit()

	id, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	require.Equal(t, int64(7), id)
	require.Equal(t, int64(7), u.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Такой email уже есть: rollback и ErrAlreadyExists
func TestUsersRepository_Create_AlreadyExists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), newUser())
	require.ErrorIs(t, err, serr.ErrAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Другая ошибка PostgreSQL не считается дублем
func TestUsersRepository_Create_OtherPgError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23502"}) // not_null_violation
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), newUser())
	require.ErrorIs(t, err, serr.ErrInternal)
	require.False(t, errors.Is(err, serr.ErrAlreadyExists))
	require.NoError(t, mock.ExpectationsWereMet())
}

// Ошибка сервера
func TestUsersRepository_Create_InternalError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), newUser())
	require.ErrorIs(t, err, serr.ErrInternal)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersRepository_Create_BeginFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	_, err := repo.Create(context.Background(), newUser())
	require.ErrorIs(t, err, serr.ErrInternal)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersRepository_Create_CommitFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit().WillReturnError(sql.ErrTxDone)

	_, err := repo.Create(context.Background(), newUser())
	require.ErrorIs(t, err, serr.ErrInternal)
	require.NoError(t, mock.ExpectationsWereMet())
}

// поиск по email
func TestUsersRepository_GetByEmail_OK(t *testing.T) {
	repo, mock := newMockRepo(t)
	uid := uuid.New()

	mock.ExpectQuery(`SELECT id, uid, name, email, password FROM users WHERE email = \$1`).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "uid", "name", "email", "password"}).
			AddRow(int64(3), uid.String(), "Alice", "alice@example.com", "hash"))

	u, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(3), u.ID)
	require.Equal(t, uid, u.UID)
	require.Equal(t, "Alice", u.Name)
	require.Equal(t, "hash", u.PasswordHash)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersRepository_GetByEmail_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT id, uid, name, email, password FROM users`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestUsersRepository_GetByEmail_InternalError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT id, uid, name, email, password FROM users`).
		WillReturnError(sql.ErrConnDone)

	_, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.ErrorIs(t, err, serr.ErrInternal)
}

func TestUsersRepository_GetByUID(t *testing.T) {
	repo, mock := newMockRepo(t)
	uid := uuid.New()

	mock.ExpectQuery(`SELECT id, uid, name, email, password FROM users WHERE uid = \$1`).
		WithArgs(uid).
		WillReturnRows(sqlmock.NewRows([]string{"id", "uid", "name", "email", "password"}).
			AddRow(int64(1), uid.String(), "Bob", "bob@example.com", "hash"))

	u, err := repo.GetByUID(context.Background(), uid)
	require.NoError(t, err)
	require.Equal(t, "Bob", u.Name)

	mock.ExpectQuery(`FROM users WHERE uid`).WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByUID(context.Background(), uuid.New())
	require.ErrorIs(t, err, serr.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersRepository_List(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT id, name FROM users ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "Alice").
			AddRow(int64(2), "Bob"))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "Alice", users[0].Name)
	require.Equal(t, int64(2), users[1].ID)
	require.Empty(t, users[0].PasswordHash)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersRepository_List_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT id, name FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, users)
	require.Empty(t, users)
}

func TestUsersRepository_List_ScanError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT id, name FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("not-a-number", "Alice"))

	_, err := repo.List(context.Background())
	require.ErrorIs(t, err, serr.ErrInternal)
}
