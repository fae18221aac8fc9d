// Package identity handles accounts, password hashing and JWT issuance.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"docuflow/internal/storage"
	"docuflow/pkg/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrInvalidToken       = errors.New("invalid token")
)

// Service is the authentication surface consumed by the gateway.
type Service interface {
	SignIn(ctx context.Context, req LoginRequest) (*TokenPair, error)
	SignUp(ctx context.Context, req SignupRequest) (*TokenPair, error)
	Refresh(ctx context.Context, req RefreshRequest) (*TokenPair, error)
	ValidateToken(tokenString string) (*Claims, error)
	Middleware(next http.Handler) http.Handler
	MiddlewareOptional(next http.Handler) http.Handler
}

// AuthService implements Service over a user store.
type AuthService struct {
	users        storage.UserStore
	tokenService *TokenService
	minPwdLen    int
}

var _ Service = (*AuthService)(nil)

// NewAuthService creates the service and its token signer.
func NewAuthService(cfg Config, users storage.UserStore) (*AuthService, error) {
	tokenService, err := NewTokenService(cfg)
	if err != nil {
		return nil, err
	}
	minLen := cfg.MinPasswordLen
	if minLen <= 0 {
		minLen = 8
	}
	return &AuthService{
		users:        users,
		tokenService: tokenService,
		minPwdLen:    minLen,
	}, nil
}

// SignIn verifies credentials and issues a token pair.
func (s *AuthService) SignIn(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	valid, err := VerifyPassword(req.Password, user.PasswordHash, user.PasswordAlgo)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.tokenService.GenerateTokenPair(user)
}

// SignUp creates an account and signs it in.
func (s *AuthService) SignUp(ctx context.Context, req SignupRequest) (*TokenPair, error) {
	if req.Username == "" {
		return nil, errors.New("username is required")
	}
	if len(req.Password) < s.minPwdLen {
		return nil, fmt.Errorf("password must be at least %d characters", s.minPwdLen)
	}

	hash, algo, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	user := &model.User{
		UserKey:      model.NewKey(),
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		PasswordAlgo: algo,
		Roles:        []string{model.RoleSimple},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrExists) {
			return nil, errors.New("user already exists")
		}
		return nil, err
	}

	return s.tokenService.GenerateTokenPair(user)
}

// Refresh rotates a refresh token into a new pair. The user is re-read so
// role changes and deactivation take effect on rotation.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*TokenPair, error) {
	claims, err := s.tokenService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !claims.Refresh {
		return nil, ErrInvalidToken
	}

	user, err := s.users.Get(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.tokenService.GenerateTokenPair(user)
}

// ValidateToken verifies an access token string.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims, err := s.tokenService.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Refresh {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Middleware rejects requests without a valid bearer token.
func (s *AuthService) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		claims, err := s.claimsFromHeader(authHeader)
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// MiddlewareOptional attaches claims when a token is present, and lets
// anonymous requests through.
func (s *AuthService) MiddlewareOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := s.claimsFromHeader(authHeader)
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func (s *AuthService) claimsFromHeader(authHeader string) (*Claims, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, ErrInvalidToken
	}
	return s.ValidateToken(parts[1])
}

func withClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, ContextKeyUserID, claims.Subject)
	ctx = context.WithValue(ctx, ContextKeyUsername, claims.Username)
	ctx = context.WithValue(ctx, ContextKeyRoles, claims.Roles)
	return context.WithValue(ctx, ContextKeyClaims, claims)
}

// ClaimsFromContext returns the claims attached by the middleware, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ContextKeyClaims).(*Claims)
	return claims, ok
}

// UserIDFromContext returns the authenticated user key, or "".
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyUserID).(string)
	return id
}

// HasRole reports whether the context carries the given role.
func HasRole(ctx context.Context, role string) bool {
	roles, _ := ctx.Value(ContextKeyRoles).([]string)
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
