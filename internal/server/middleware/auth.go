// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/models"
)

// ctxKey — тип ключей context.Context этого пакета.
type ctxKey string

// bearerKey — ключ контекста, под которым хранится токен из заголовка Authorization.
const bearerKey ctxKey = "bearer_token"

// UnauthorizedMessage — единый текст ответа 401.
// Причину (нет заголовка, просрочен, не тот тип) клиенту не сообщаем.
const UnauthorizedMessage = "Unauthorized"

// TokenFromContext достаёт bearer-токен, положенный RequireBearer.
//
// Возвращает:
//   - токен
//   - false, если middleware не отработал
func TokenFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(bearerKey).(string)
	return s, ok && s != ""
}

// RequireBearer возвращает middleware, которое требует заголовок Authorization: Bearer <token>.
//
// Токен только извлекается и кладётся в context.Context,
// подпись, срок и тип токена проверяет сервис аутентификации.
// Без заголовка — 401 {"message":"Unauthorized"}.
func RequireBearer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractBearer(r.Header.Get("Authorization"))
			if token == "" {
				WriteUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), bearerKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WriteUnauthorized пишет стандартный ответ 401.
func WriteUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.MessageResponse{Message: UnauthorizedMessage})
}

// ExtractBearer извлекает JWT из заголовка Authorization.
//
// Ожидаемый формат:
//
//	Authorization: Bearer <token>
//
// Возвращает пустую строку, если формат некорректен.
func ExtractBearer(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
