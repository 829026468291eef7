// Package http реализует маршрутизацию HTTP-слоя сервера аутентификации.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - ограничение размера тела и восстановление после паники;
//   - требование bearer-токена на /refresh и /protected.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/api"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - middleware логирования, recover и лимит тела (maxBodyBytes, 0 — без лимита);
//   - публичные эндпоинты /api/auth/register, /api/auth/login и /api/user;
//   - /api/auth/refresh и /api/auth/protected за RequireBearer;
//   - swagger UI на /swagger/*.
func NewRouter(h *api.Handler, maxBodyBytes int64) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))
	r.Use(chimw.Recoverer)
	if maxBodyBytes > 0 {
		r.Use(chimw.RequestSize(maxBodyBytes))
	}

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/user", h.ListUsers)

		r.Route("/auth", func(r chi.Router) {
			// Публичные пути
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)

			// нужен Authorization: Bearer, тип токена проверяет сервис
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireBearer())
				r.Post("/refresh", h.Refresh)
				r.Get("/protected", h.Protected)
			})
		})
	})

	return r
}
