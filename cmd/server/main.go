// @title           UserAuth API
// @version         1.0
// @description     Minimal user authentication backend.
// @description     Registration, login, refresh of access tokens and a token-protected who-am-I endpoint.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа сервера аутентификации.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера (по умолчанию ./configs/server.yaml, путь можно задать в CONFIG_PATH);
//   - создание логгера по секции log конфига;
//   - инициализацию подключения к базе данных, миграции и закрытие пула при выходе;
//   - создание хэшера паролей, сервиса токенов, репозиториев, сервисов и HTTP-обработчиков;
//   - запуск HTTP или HTTPS (если tls.enabled) сервера с заданными таймаутами;
//   - обработку системных сигналов завершения (SIGINT, SIGTERM, SIGQUIT);
//   - корректное (graceful) завершение работы сервера с таймаутом.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/api"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/config"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/crypto"
	h "github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/repository"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/service"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/go-yandex-userauth/swagger/docs"
)

const defaultConfigPath = "./configs/server.yaml"

func main() {
	// до загрузки конфига пишем в логгер по умолчанию
	sugar := logger.NewHTTPLogger().Logger.Sugar()

	if err := godotenv.Load(); err != nil {
		sugar.Warnf("no .env file loaded, error: %v", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		sugar.Fatal(err)
	}

	httpLogger, err := logger.New(cfg.Log.LoggerOptions())
	if err != nil {
		sugar.Fatal(err)
	}
	defer httpLogger.Sync()
	sugar = httpLogger.Logger.Sugar()

	// подключаем базу данных и накатываем миграции
	db, err := config.InitDB(context.Background(), cfg, sugar)
	if err != nil {
		sugar.Fatal(err)
	}
	// делаем отложенное закрытие бд
	defer db.Close()

	hasher, err := crypto.NewHasher(cfg.Password.Hasher, crypto.Argon2Params{
		Time:      cfg.Password.Argon2.Time,
		MemoryKiB: cfg.Password.Argon2.MemoryKiB,
		Threads:   cfg.Password.Argon2.Threads,
		KeyLen:    cfg.Password.Argon2.KeyLen,
		SaltLen:   cfg.Password.Argon2.SaltLen,
	}, cfg.Password.Bcrypt.Cost)
	if err != nil {
		sugar.Fatal(err)
	}

	tokens := crypto.NewTokenService(crypto.JWTConfig{
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		SigningKey: cfg.Auth.JWT.SigningKey,
		AccessTTL:  cfg.Auth.AccessTTL,
		RefreshTTL: cfg.Auth.RefreshTTL,
	})

	// создаём репы и сервисы
	repos := service.Repositories{
		Users: repository.NewUsersRepository(db, cfg.DB.Driver),
	}
	svc := service.NewServices(repos, hasher, tokens)

	handler := api.NewHandler(svc, httpLogger)
	router := h.NewRouter(handler, cfg.Server.MaxBodyBytes)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: tlsMinVersion(cfg.TLS.MinVersion)}
	}

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		var err error
		if cfg.TLS.Enabled {
			sugar.Infof("server started on https://%s", addr)
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			sugar.Infof("server started on http://%s", addr)
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единная обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Errorf("server stopped with error: %v", err)
		return
	}
	sugar.Info("server gracefully stopped")
}

// tlsMinVersion переводит "1.2"/"1.3" из конфига в константу crypto/tls.
func tlsMinVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}
