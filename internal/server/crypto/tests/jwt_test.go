package tests

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-yandex-userauth/internal/server/crypto"
	serr "github.com/IvanChernomyrdin/go-yandex-userauth/internal/shared/errors"
)

const testKey = "supersecretkeysupersecretkey123456"

func newTokenService() *crypto.TokenService {
	return crypto.NewTokenService(crypto.JWTConfig{
		Issuer:     "userauth",
		Audience:   "userauth-cli",
		SigningKey: testKey,
		AccessTTL:  900 * time.Second,
		RefreshTTL: 2592000 * time.Second,
	})
}

// Успешный выпуск и проверка
func TestTokenService_IssueAndVerify(t *testing.T) {
	s := newTokenService()
	uid := uuid.NewString()

	access, err := s.IssueAccess(uid)
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(access, "."))

	got, err := s.Verify(access, crypto.KindAccess)
	require.NoError(t, err)
	require.Equal(t, uid, got)

	refresh, err := s.IssueRefresh(uid)
	require.NoError(t, err)

	got, err = s.Verify(refresh, crypto.KindRefresh)
	require.NoError(t, err)
	require.Equal(t, uid, got)
}

// Claims содержат всё, что нужно: user_uid, type, iat, exp, jti
func TestTokenService_ClaimsLayout(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newTokenService().WithClock(func() time.Time { return now })

	tok, err := s.IssueAccess("uid-1")
	require.NoError(t, err)

	claims := &crypto.Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)

	require.Equal(t, "uid-1", claims.UserUID)
	require.Equal(t, crypto.KindAccess, claims.Kind)
	require.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	require.Equal(t, now.Add(900*time.Second).Unix(), claims.ExpiresAt.Unix())
	require.NotEmpty(t, claims.ID)
	require.Equal(t, "userauth", claims.Issuer)
}

// Каждый токен получает свой jti
func TestTokenService_UniqueTokenIDs(t *testing.T) {
	s := newTokenService()

	t1, err := s.IssueAccess("uid-1")
	require.NoError(t, err)
	t2, err := s.IssueAccess("uid-1")
	require.NoError(t, err)
	require.NotEqual(t, t1, t2)
}

// refresh не принимается вместо access и наоборот
func TestTokenService_KindIsolation(t *testing.T) {
	s := newTokenService()

	refresh, err := s.IssueRefresh("uid-1")
	require.NoError(t, err)
	_, err = s.Verify(refresh, crypto.KindAccess)
	require.ErrorIs(t, err, crypto.ErrTokenKind)
	require.ErrorIs(t, err, serr.ErrUnauthorized)

	access, err := s.IssueAccess("uid-1")
	require.NoError(t, err)
	_, err = s.Verify(access, crypto.KindRefresh)
	require.ErrorIs(t, err, crypto.ErrTokenKind)
}

// Просроченный токен отклоняется даже с верной подписью
func TestTokenService_Expired(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	issuer := newTokenService().WithClock(func() time.Time { return past })

	access, err := issuer.IssueAccess("uid-1")
	require.NoError(t, err)

	_, err = newTokenService().Verify(access, crypto.KindAccess)
	require.ErrorIs(t, err, crypto.ErrTokenExpired)
	require.ErrorIs(t, err, serr.ErrUnauthorized)

	// refresh живёт 30 дней — два часа назад ещё валиден
	refresh, err := issuer.IssueRefresh("uid-1")
	require.NoError(t, err)
	_, err = newTokenService().Verify(refresh, crypto.KindRefresh)
	require.NoError(t, err)
}

func TestTokenService_WrongKey(t *testing.T) {
	other := crypto.NewTokenService(crypto.JWTConfig{
		Issuer:     "userauth",
		Audience:   "userauth-cli",
		SigningKey: "anothersecretanothersecretanother!",
		AccessTTL:  time.Minute,
	})
	tok, err := other.IssueAccess("uid-1")
	require.NoError(t, err)

	_, err = newTokenService().Verify(tok, crypto.KindAccess)
	require.ErrorIs(t, err, crypto.ErrTokenSignature)
}

// Подмена claims без переподписи ломает подпись
func TestTokenService_TamperedPayload(t *testing.T) {
	s := newTokenService()
	access, err := s.IssueAccess("uid-1")
	require.NoError(t, err)
	refresh, err := s.IssueRefresh("uid-1")
	require.NoError(t, err)

	// payload от refresh + подпись от access
	a := strings.Split(access, ".")
	r := strings.Split(refresh, ".")
	forged := a[0] + "." + r[1] + "." + a[2]

	_, err = s.Verify(forged, crypto.KindRefresh)
	require.ErrorIs(t, err, crypto.ErrTokenSignature)
}

func TestTokenService_Garbage(t *testing.T) {
	s := newTokenService()

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := s.Verify(tok, crypto.KindAccess)
		require.ErrorIs(t, err, serr.ErrUnauthorized, tok)
	}
}

// alg=none и чужие алгоритмы не принимаются
func TestTokenService_RejectsNoneAlg(t *testing.T) {
	claims := crypto.Claims{
		UserUID: "uid-1",
		Kind:    crypto.KindAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "userauth",
			Audience:  jwt.ClaimStrings{"userauth-cli"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTokenService().Verify(tok, crypto.KindAccess)
	require.ErrorIs(t, err, serr.ErrUnauthorized)
}

// Токен без exp не принимается
func TestTokenService_RequiresExpiry(t *testing.T) {
	claims := crypto.Claims{
		UserUID: "uid-1",
		Kind:    crypto.KindAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   "userauth",
			Audience: jwt.ClaimStrings{"userauth-cli"},
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	require.NoError(t, err)

	_, err = newTokenService().Verify(tok, crypto.KindAccess)
	require.ErrorIs(t, err, crypto.ErrTokenMalformed)
}

func TestTokenService_EmptyIdentity(t *testing.T) {
	_, err := newTokenService().IssueAccess("  ")
	require.ErrorIs(t, err, crypto.ErrTokenIdentity)
}

func TestNewTokenID(t *testing.T) {
	a, err := crypto.NewTokenID()
	require.NoError(t, err)
	b, err := crypto.NewTokenID()
	require.NoError(t, err)

	require.Len(t, a, 22) // 16 байт в base64url без паддинга
	require.NotEqual(t, a, b)
}
