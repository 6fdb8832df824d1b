package tokens

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of the embedded-admin session token issued by
// the host platform's auth layer.
type SessionClaims struct {
	Role string `json:"role"`
	Shop string `json:"shop"`
	jwt.RegisteredClaims
}

func SessionClaimsFromToken(tokenStr string, secret []byte) (*SessionClaims, error) {
	var claims SessionClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid session token")
	}
	return &claims, nil
}
