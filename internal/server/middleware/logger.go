// Логирование HTTP-запросов
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/logger"
)

// LoggerMiddleware пишет в log метод, URI, статус, размер ответа и длительность (мс) каждого запроса.
//
// Если хендлер ничего не записал, в лог уходит статус 200, как его отправит net/http.
// Запросы, оборванные паникой, логирует chi Recoverer.
func LoggerMiddleware(log *logger.HTTPLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			duration := float64(time.Since(start).Microseconds()) / 1000
			log.LogRequest(r.Method, r.RequestURI, status, ww.BytesWritten(), duration)
		})
	}
}
