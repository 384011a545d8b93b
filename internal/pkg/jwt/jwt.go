package jwt

import (
	"context"
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// Issuer mints and checks the HS256 tokens that stand in for sessions.
// The secret is set once at startup and never mutated, so concurrent
// use needs no locking.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue signs a token with sub = email, valid from now for the
// configured lifetime.
func (i *Issuer) Issue(email string) (string, error) {
	now := time.Now()
	claims := jwtlib.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(i.ttl)),
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *Issuer) parse(token string) (*jwtlib.RegisteredClaims, error) {
	parsed, err := jwtlib.ParseWithClaims(token, &jwtlib.RegisteredClaims{}, func(t *jwtlib.Token) (interface{}, error) {
		if t.Method.Alg() != jwtlib.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*jwtlib.RegisteredClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Verify reports whether token carries a valid signature and has not
// expired. The cause of a failure is logged but deliberately not
// returned; callers only get the outcome.
func (i *Issuer) Verify(token string) bool {
	_, err := i.parse(token)
	if err == nil {
		return true
	}
	logger := logutil.GetLogger(context.Background())
	switch {
	case token == "":
		logger.Debug("token is empty")
	case errors.Is(err, jwtlib.ErrTokenExpired):
		logger.Debug("token expired")
	case errors.Is(err, jwtlib.ErrTokenMalformed):
		logger.Debug("token malformed")
	case errors.Is(err, jwtlib.ErrTokenSignatureInvalid):
		logger.Debug("token signature invalid")
	default:
		logger.Debug("token verification failed", zap.Error(err))
	}
	return false
}

// Subject extracts the email a token asserts, or "" if the token does
// not parse. This is not an authentication check; use Verify for that.
func (i *Issuer) Subject(token string) string {
	claims, err := i.parse(token)
	if err != nil {
		logutil.GetLogger(context.Background()).Debug("extract token subject failed", zap.Error(err))
		return ""
	}
	return claims.Subject
}
