package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/errors"
)

// AuthService реализует бизнес-логику аутентификации.
//
// Ответственность:
//   - регистрация пользователей
//   - аутентификация (логин) и выпуск пары access / refresh токенов
//   - выпуск нового access токена по refresh
//   - определение пользователя по access токену
//
// Между запросами состояния не хранит.
type AuthService struct {
	users  UsersRepo
	hasher crypto.Hasher
	tokens *crypto.TokenService
	newUID func() uuid.UUID
}

// TokenPair представляет пару access / refresh токенов.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// NewAuthService создаёт AuthService с зависимостями.
func NewAuthService(users UsersRepo, hasher crypto.Hasher, tokens *crypto.TokenService) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		newUID: uuid.New,
	}
}

// WithUIDGenerator подменяет генератор uid (для тестов).
func (s *AuthService) WithUIDGenerator(gen func() uuid.UUID) *AuthService {
	cp := *s
	cp.newUID = gen
	return &cp
}

// Register регистрирует нового пользователя.
//
// Проверки выполняются в порядке:
//   - все поля заполнены, иначе ErrMissingField
//   - email синтаксически корректен, иначе ErrInvalidEmail
//   - password совпадает с confirm, иначе ErrPasswordMismatch
//   - email ещё не занят, иначе ErrAlreadyExists
//
// Дубль, вставленный параллельным запросом после предварительной проверки,
// отбивает ограничение UNIQUE в хранилище, ответ тот же ErrAlreadyExists.
// Токены при регистрации не выдаются.
func (s *AuthService) Register(ctx context.Context, name, email, password, confirm string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if name == "" || email == "" || password == "" || confirm == "" {
		return serr.ErrMissingField
	}
	if !validEmail(email) {
		return serr.ErrInvalidEmail
	}
	if password != confirm {
		return serr.ErrPasswordMismatch
	}
	if utf8.RuneCountInString(name) > models.MaxNameLen {
		return serr.ErrNameTooLong
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return serr.ErrAlreadyExists
	case errors.Is(err, serr.ErrNotFound):
	default:
		return internal(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, serr.ErrInvalidInput) {
			return err
		}
		return internal(err)
	}

	u := &models.User{
		UID:          s.newUID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if _, err := s.users.Create(ctx, u); err != nil {
		// проиграли гонку с параллельной регистрацией
		if errors.Is(err, serr.ErrAlreadyExists) {
			return serr.ErrAlreadyExists
		}
		return internal(err)
	}
	return nil
}

// Login аутентифицирует пользователя и выдаёт пару токенов.
//
// Не раскрывает факт существования email: нет такого пользователя
// и неверный пароль дают одну и ту же ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return TokenPair{}, serr.ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return TokenPair{}, serr.ErrInvalidCredentials
		}
		return TokenPair{}, internal(err)
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return TokenPair{}, internal(err)
	}
	if !ok {
		return TokenPair{}, serr.ErrInvalidCredentials
	}

	uid := u.UID.String()
	access, err := s.tokens.IssueAccess(uid)
	if err != nil {
		return TokenPair{}, internal(err)
	}
	refresh, err := s.tokens.IssueRefresh(uid)
	if err != nil {
		return TokenPair{}, internal(err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh выпускает новый access токен по refresh токену.
//
// Пользователь в хранилище не перечитывается: валидного refresh токена достаточно.
// Любая проблема с токеном — ошибка, для которой errors.Is(err, serr.ErrUnauthorized).
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	uid, err := s.tokens.Verify(refreshToken, crypto.KindRefresh)
	if err != nil {
		return "", err
	}

	access, err := s.tokens.IssueAccess(uid)
	if err != nil {
		return "", internal(err)
	}
	return access, nil
}

// WhoAmI возвращает пользователя, которому выдан access токен.
// Если пользователь с тех пор исчез — ErrInvalidCredentials.
func (s *AuthService) WhoAmI(ctx context.Context, accessToken string) (*models.User, error) {
	raw, err := s.tokens.Verify(accessToken, crypto.KindAccess)
	if err != nil {
		return nil, err
	}

	uid, err := uuid.Parse(raw)
	if err != nil {
		return nil, serr.ErrInvalidCredentials
	}

	u, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return nil, serr.ErrInvalidCredentials
		}
		return nil, internal(err)
	}
	return u, nil
}

// validEmail проверяет синтаксис адреса по RFC 5322.
// Форма "Name <addr>" не принимается, только голый адрес.
// Домен должен состоять хотя бы из двух непустых меток: "jane@x" отклоняется.
func validEmail(email string) bool {
	if len(email) > models.MaxEmailLen {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}

	at := strings.LastIndexByte(email, '@')
	labels := strings.Split(email[at+1:], ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if l == "" {
			return false
		}
	}
	return true
}
