package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vskc23/user-profile-integration/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = time.Hour

// Domain errors for auth flows.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
)

// AuthService verifies credentials against stored bcrypt digests and issues
// short-lived JWTs for clients that prefer bearer tokens over basic auth.
type AuthService struct {
	users      repository.Users
	signingKey []byte
	tokenTTL   time.Duration
}

func NewAuthService(users repository.Users, cfg AuthConfig) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{
		users:      users,
		signingKey: []byte(cfg.SigningKey),
		tokenTTL:   ttl,
	}
}

// Verify checks the plaintext password against the stored hash and returns
// the user's ID on success.
func (s *AuthService) Verify(ctx context.Context, username, password string) (int, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if u == nil {
		return 0, ErrUserNotFound
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return 0, ErrInvalidPassword
	}
	return u.ID, nil
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// GenerateToken validates credentials and returns a signed JWT.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	userID, err := s.Verify(ctx, username, password)
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}

// ParseToken parses a JWT and returns the user ID it was issued for.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

// helper: hash password with a slow adaptive hash
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
