package crypto

import (
	"crypto/rand"
	"encoding/base64"
)

// NewTokenID возвращает случайный 128-битный идентификатор токена (jti).
func NewTokenID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
