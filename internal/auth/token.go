package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates the bearer token failed verification. The HTTP
// layer collapses it into ErrUnauthenticated before responding.
var ErrInvalidToken = errors.New("auth: invalid token")

// Claims are the JWT claims carried by an access token. The registered ID
// (jti) is the session id, which makes every token revocable: resolution
// always checks the session row, so a logged-out token dies immediately
// even if its signature and expiry are still valid.
type Claims struct {
	TenantID string `json:"tid"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func signToken(secret []byte, claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

func parseToken(secret []byte, issuer string, now func() time.Time, raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidToken
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(now),
	)
	parsed, err := parser.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" || strings.TrimSpace(claims.ID) == "" {
		return nil, ErrInvalidToken
	}
	if strings.TrimSpace(claims.TenantID) == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
