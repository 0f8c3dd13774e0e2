package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds token configuration
type Config struct {
	Secret      []byte        // Secret key for signing tokens
	TokenExpiry time.Duration // How long session tokens are valid
	Issuer      string
}

// DefaultConfig returns sensible defaults
func DefaultConfig(secret string) Config {
	return Config{
		Secret:      []byte(secret),
		TokenExpiry: 30 * time.Minute,
		Issuer:      "bankist",
	}
}

// Claims represents the JWT payload for a session token
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Service issues and validates session tokens. It knows nothing about
// PINs: credential checks belong to the session layer, the token merely
// ties subsequent HTTP requests to an authenticated username.
type Service struct {
	config Config
}

// NewService creates a new auth service
func NewService(config Config) *Service {
	return &Service{config: config}
}

// SessionToken contains a signed token and its expiry
type SessionToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IssueToken creates a signed session token for a username
func (s *Service) IssueToken(username string) (*SessionToken, error) {
	now := time.Now()
	expiry := now.Add(s.config.TokenExpiry)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			Issuer:    s.config.Issuer,
		},
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.config.Secret)
	if err != nil {
		return nil, err
	}

	return &SessionToken{Token: signed, ExpiresAt: expiry}, nil
}

// ValidateToken parses and validates a session token
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.config.Secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
