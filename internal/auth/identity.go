package auth

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidIdentityToken = errors.New("invalid identity token")
	ErrMissingSubject       = errors.New("identity token has no subject")
)

// Identity holds the profile claims carried by an identity provider ID token.
type Identity struct {
	Subject string
	Name    string
	Email   string
	Picture string
}

type identityClaims struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// ParseIdentityToken decodes the claims of an ID token issued by the sign-in
// provider. The signature is NOT verified: the token is only used to fill in
// the user's profile, never to authorize a mutation.
func ParseIdentityToken(raw string) (*Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidIdentityToken
	}

	claims := &identityClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, ErrInvalidIdentityToken
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return &Identity{
		Subject: claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Picture: claims.Picture,
	}, nil
}
