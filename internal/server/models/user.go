// Серверная модель пользователя
package models

import "github.com/google/uuid"

// Ограничения колонок таблицы users.
const (
	MaxNameLen  = 100
	MaxEmailLen = 120
)

type User struct {
	ID           int64     // суррогатный ключ, назначается БД, наружу не отдаётся как идентичность
	UID          uuid.UUID // внешний идентификатор, генерируется при регистрации
	Name         string
	Email        string
	PasswordHash string // только результат хэширования
}
