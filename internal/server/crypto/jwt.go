// Package crypto содержит криптографические примитивы сервера.
//
// В частности, пакет отвечает за:
//   - хэширование и проверку паролей (argon2id, bcrypt);
//   - генерацию, подпись и проверку JWT access/refresh токенов;
//   - соблюдение требований безопасности (HS256, срок жизни, тип токена).
package crypto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	serr "github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/errors"
)

// TokenKind — тип токена, зашивается в claim "type".
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Ошибки проверки токена. Внутри различаются, наружу все
// сводятся к serr.ErrUnauthorized (errors.Is вернёт true).
var (
	ErrTokenExpired   = fmt.Errorf("%w: token expired", serr.ErrUnauthorized)
	ErrTokenMalformed = fmt.Errorf("%w: token malformed", serr.ErrUnauthorized)
	ErrTokenSignature = fmt.Errorf("%w: token signature invalid", serr.ErrUnauthorized)
	ErrTokenKind      = fmt.Errorf("%w: wrong token type", serr.ErrUnauthorized)
	ErrTokenIdentity  = fmt.Errorf("%w: token has no identity", serr.ErrUnauthorized)
)

// Claims — содержимое токена. Подпись покрывает все поля,
// поэтому подменить exp или type без ключа нельзя.
type Claims struct {
	UserUID string    `json:"user_uid"`
	Kind    TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// JWTConfig описывает параметры выпуска и проверки токенов.
type JWTConfig struct {
	// Issuer — значение поля iss (кто выдал токен), опционально.
	Issuer string
	// Audience — значение поля aud (для кого предназначен токен), опционально.
	Audience string
	// SigningKey — секретный ключ для подписи токена (HS256).
	// Должен быть достаточно длинным и случайным.
	SigningKey string
	// AccessTTL — срок жизни access-токена.
	AccessTTL time.Duration
	// RefreshTTL — срок жизни refresh-токена.
	RefreshTTL time.Duration
}

// TokenService выпускает и проверяет access/refresh токены.
// Создаётся один раз при старте, после чего только читается.
type TokenService struct {
	cfg JWTConfig
	now func() time.Time
}

// NewTokenService создаёт TokenService.
func NewTokenService(cfg JWTConfig) *TokenService {
	return &TokenService{cfg: cfg, now: time.Now}
}

// WithClock подменяет источник времени (для тестов).
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// AccessTTL возвращает срок жизни access-токена.
func (s *TokenService) AccessTTL() time.Duration { return s.cfg.AccessTTL }

// IssueAccess выпускает короткоживущий access-токен.
func (s *TokenService) IssueAccess(userUID string) (string, error) {
	return s.issue(userUID, KindAccess, s.cfg.AccessTTL)
}

// IssueRefresh выпускает долгоживущий refresh-токен.
func (s *TokenService) IssueRefresh(userUID string) (string, error) {
	return s.issue(userUID, KindRefresh, s.cfg.RefreshTTL)
}

// issue создаёт и подписывает токен.
//
// Токен содержит:
//   - user_uid, type
//   - iss, aud (если заданы)
//   - jti, iat, nbf, exp
func (s *TokenService) issue(userUID string, kind TokenKind, ttl time.Duration) (string, error) {
	if strings.TrimSpace(userUID) == "" {
		return "", ErrTokenIdentity
	}

	jti, err := NewTokenID()
	if err != nil {
		return "", fmt.Errorf("token id: %w", err)
	}

	now := s.now()
	claims := Claims{
		UserUID: userUID,
		Kind:    kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if s.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{s.cfg.Audience}
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.SigningKey))
}

// Verify проверяет подпись, срок действия и тип токена.
// Возвращает user_uid из токена.
func (s *TokenService) Verify(tokenStr string, kind TokenKind) (string, error) {
	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return "", ErrTokenMalformed
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}
	if s.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(s.cfg.Audience))
	}

	claims := &Claims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil {
		return "", mapJWTError(err)
	}

	if claims.Kind != kind {
		return "", ErrTokenKind
	}

	uid := strings.TrimSpace(claims.UserUID)
	if uid == "" {
		return "", ErrTokenIdentity
	}
	return uid, nil
}

// mapJWTError переводит ошибки jwt в ошибки пакета.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenSignature
	default:
		return ErrTokenMalformed
	}
}
