package adapter

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"go-linkup/internal/infrastructure/identity/port"
)

// JWTVerifier validates HS256 bearer tokens issued by the identity
// collaborator. Only verification lives here; issuance is external.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

var _ port.Verifier = (*JWTVerifier)(nil)

type claims struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func (v *JWTVerifier) Verify(ctx context.Context, credential string) (port.Identity, error) {
	if credential == "" {
		return port.Identity{}, port.ErrInvalidCredential
	}

	var c claims
	token, err := jwt.ParseWithClaims(credential, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return port.Identity{}, port.ErrInvalidCredential
	}
	if c.Subject == "" {
		return port.Identity{}, port.ErrInvalidCredential
	}

	return port.Identity{UserID: c.Subject, Name: c.Name, Role: c.Role}, nil
}
