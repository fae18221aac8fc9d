package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds the identity settings.
type Config struct {
	PrivateKeyPath  string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	MinPasswordLen  int
}

// ContextKey is the type for authentication values stored in a request
// context.
type ContextKey string

const (
	ContextKeyUserID   ContextKey = "user_id"
	ContextKeyUsername ContextKey = "username"
	ContextKeyRoles    ContextKey = "roles"
	ContextKeyClaims   ContextKey = "claims"
)

// Claims are the JWT claims carried by access and refresh tokens.
type Claims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair is returned on login, signup and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

// LoginRequest carries sign-in credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupRequest carries account creation fields.
type SignupRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// RefreshRequest carries the refresh token to rotate.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
