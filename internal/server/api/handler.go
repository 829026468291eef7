// Package api реализует HTTP-слой сервера аутентификации.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения;
//   - аннотации swagger для генерации документации (swag).
//
// Все ответы с ошибкой имеют вид {"message": "..."}.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/models"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок.
//
// Методы Handler используются роутером для обработки HTTP-запросов.
type Handler struct {
	Svc *service.Services
	Log *logger.HTTPLogger
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.HTTPLogger) *Handler {
	return &Handler{
		Svc: svc,
		Log: log,
	}
}

// WriteJSON пишет v в теле ответа со статусом status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, models.MessageResponse{Message: msg})
}

// decodeJSON читает тело запроса в v. Любая ошибка разбора (включая
// превышение лимита размера тела) оборачивается в serr.ErrBadJSON.
func (h *Handler) decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.Log.Logger.Debug("bad request body", zap.String("uri", r.RequestURI), zap.Error(err))
		return fmt.Errorf("%w: %v", serr.ErrBadJSON, err)
	}
	return nil
}
