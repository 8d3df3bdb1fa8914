package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/teamorders/orderdesk/internal/core/domain"
)

// DefaultTokenTTL is the absolute validity window of an issued session token.
// There is no sliding renewal; a token stays valid until this long after
// issuance regardless of activity.
const DefaultTokenTTL = 180 * 24 * time.Hour

// TokenService issues and verifies the signed session tokens that bind a
// username to a display name. Tokens are HS256-signed and expiry-bound;
// verification is a pure function of payload, secret, and clock.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the validity window, which is also the cookie max-age.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue produces an opaque token for the given identity, expiring a fixed
// duration from now.
func (s *TokenService) Issue(username, displayName string) (string, error) {
	claims := jwt.MapClaims{
		"username":     username,
		"display_name": displayName,
		"exp":          s.now().Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify decodes and checks the token. It never returns an error: a token
// that fails to decode, carries a bad signature, or has expired simply yields
// ok=false.
func (s *TokenService) Verify(token string) (domain.Identity, bool) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return domain.Identity{}, false
	}

	username, _ := claims["username"].(string)
	if username == "" {
		return domain.Identity{}, false
	}
	displayName, _ := claims["display_name"].(string)

	return domain.Identity{Username: username, DisplayName: displayName}, true
}
