// Package config содержит инициализацию подключения к базе данных сервера.
//
// Пакет выполняет:
//   - открытие пула соединений (PostgreSQL через pgx, SQLite через modernc);
//   - проверку доступности базы (Ping);
//   - запуск миграций (golang-migrate) при старте сервера.
//
// Пул создаётся один раз в cmd/server и передаётся в репозитории явно.
package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"go.uber.org/zap"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
	_ "modernc.org/sqlite"
)

// sqlDriverName возвращает имя драйвера database/sql для db.driver.
func sqlDriverName(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return "pgx", nil
	case DriverSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported db driver %q", driver)
	}
}

// OpenDB открывает пул соединений, настраивает его и проверяет доступность базы.
func OpenDB(ctx context.Context, cfg DBConfig) (*sql.DB, error) {
	name, err := sqlDriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(name, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	// sqlite не любит конкурентную запись из нескольких соединений
	if cfg.Driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// Migrate применяет миграции из каталога path к уже открытой базе.
// Если миграции уже применены, migrate.ErrNoChange не считается ошибкой.
func Migrate(db *sql.DB, driver, path string, log *zap.SugaredLogger) error {
	var (
		drv database.Driver
		err error
	)
	switch driver {
	case DriverPostgres:
		drv, err = migratepg.WithInstance(db, &migratepg.Config{})
	case DriverSQLite:
		drv, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		err = fmt.Errorf("unsupported db driver %q", driver)
	}
	if err != nil {
		log.Errorf("error creating migration driver: %v", err)
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+path, driver, drv)
	if err != nil {
		log.Errorf("error creating migrations: %v", err)
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Errorf("error applying migrations: %v", err)
		return err
	}

	log.Info("migrations applied successfully")
	return nil
}

// InitDB открывает базу и, если включено, применяет миграции.
// При ошибке миграций пул закрывается.
func InitDB(ctx context.Context, cfg *Config, log *zap.SugaredLogger) (*sql.DB, error) {
	db, err := OpenDB(ctx, cfg.DB)
	if err != nil {
		log.Errorf("error to connect db: %v", err)
		return nil, err
	}

	if cfg.Migrations.Enabled {
		if err := Migrate(db, cfg.DB.Driver, cfg.Migrations.Path, log); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}
