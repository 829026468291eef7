// Package repository реализует хранилище учётных записей поверх database/sql.
//
// Поддерживаются два драйвера: PostgreSQL (pgx) и SQLite (modernc).
// Уникальность email обеспечивается ограничением UNIQUE в БД, а не проверкой в коде,
// поэтому одновременные регистрации с одним email дают ровно одну запись.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/config"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/errors"
)

// SQLSTATE unique_violation
const pgUniqueViolation = "23505"

type UsersRepository struct {
	db     *sql.DB
	driver string
}

// NewUsersRepository создаёт репозиторий. driver — config.DriverPostgres или config.DriverSQLite,
// от него зависит синтаксис плейсхолдеров.
func NewUsersRepository(db *sql.DB, driver string) *UsersRepository {
	return &UsersRepository{db: db, driver: driver}
}

// Create вставляет пользователя в отдельной транзакции и возвращает его id.
// Нарушение уникальности email (или uid) — serr.ErrAlreadyExists, транзакция откатывается.
func (r *UsersRepository) Create(ctx context.Context, u *models.User) (int64, error) {
	var id int64

	err := withTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		return tx.QueryRowContext(ctx, r.bind(
			`INSERT INTO users (uid, name, email, password)
			 VALUES (?, ?, ?, ?)
			 RETURNING id`),
			u.UID, u.Name, u.Email, u.PasswordHash,
		).Scan(&id)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return 0, serr.ErrAlreadyExists
		}
		return 0, fmt.Errorf("%w: insert user: %v", serr.ErrInternal, err)
	}

	u.ID = id
	return id, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, r.bind(
		`SELECT id, uid, name, email, password FROM users WHERE email = ?`),
		email,
	)
	return scanUser(row)
}

func (r *UsersRepository) GetByUID(ctx context.Context, uid uuid.UUID) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, r.bind(
		`SELECT id, uid, name, email, password FROM users WHERE uid = ?`),
		uid,
	)
	return scanUser(row)
}

// List возвращает всех пользователей по возрастанию id.
// Заполняются только ID и Name, хэши паролей не читаются.
func (r *UsersRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", serr.ErrInternal, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("%w: scan user: %v", serr.ErrInternal, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list users: %v", serr.ErrInternal, err)
	}

	return users, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.UID, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, serr.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get user: %v", serr.ErrInternal, err)
	}
	return &u, nil
}

// bind переписывает плейсхолдеры "?" в "$1, $2, ..." для PostgreSQL.
func (r *UsersRepository) bind(query string) string {
	if r.driver != config.DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// isUniqueViolation распознаёт нарушение UNIQUE в обоих драйверах.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var liteErr *msqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3lib.SQLITE_CONSTRAINT:
			return strings.Contains(strings.ToLower(liteErr.Error()), "unique constraint failed")
		}
	}
	return false
}
