package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims matches the access tokens issued by the auth provider: the
// subject is the user's UUID.
type JWTClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
