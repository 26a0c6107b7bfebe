package services

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/temcen/anirec/internal/config"
	"github.com/temcen/anirec/pkg/models"
)

// ErrAuthDisabled is returned by ValidateToken when no secret is configured.
var ErrAuthDisabled = errors.New("authentication is not configured")

// AuthService validates HS256 access tokens whose subject is the user's UUID.
type AuthService struct {
	logger    *logrus.Logger
	jwtSecret []byte
	issuer    string
}

func NewAuthService(cfg *config.AuthConfig, logger *logrus.Logger) *AuthService {
	return &AuthService{
		logger:    logger,
		jwtSecret: []byte(cfg.JWTSecret),
		issuer:    cfg.Issuer,
	}
}

// Enabled reports whether requests must carry a valid token.
func (s *AuthService) Enabled() bool {
	return s != nil && len(s.jwtSecret) > 0
}

// ValidateToken parses and verifies a token and returns its claims together
// with the user id taken from the subject.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, uuid.UUID, error) {
	if !s.Enabled() {
		return nil, uuid.Nil, ErrAuthDisabled
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, opts...)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, uuid.Nil, fmt.Errorf("invalid token claims")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("invalid token subject: %w", err)
	}

	return claims, userID, nil
}
