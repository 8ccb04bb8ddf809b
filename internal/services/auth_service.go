package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Havertz69/rental-app/internal/logger"
	"github.com/Havertz69/rental-app/internal/models"
)

// Claims is the payload carried by a bearer token.
type Claims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	IsStaff bool   `json:"is_staff"`
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// Token is the response to a successful login.
type Token struct {
	ExpiresAt   time.Time `json:"expires_at"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
}

// AuthService issues and verifies bearer tokens.
type AuthService interface {
	// Login checks credentials and returns a signed token.
	// Returns ErrInvalidCredentials for an unknown email or wrong password.
	Login(ctx context.Context, email, password string) (*Token, error)
	// ParseToken verifies signature and expiry. Returns ErrInvalidToken on failure.
	ParseToken(token string) (*Claims, error)
	// Me loads the account behind a set of claims.
	Me(ctx context.Context, claims *Claims) (*models.User, error)
	// Register creates an account with a bcrypt hash of the password.
	Register(ctx context.Context, email, password, fullName string, isStaff bool) (*models.User, error)
}

type authService struct {
	repos   Repositories
	log     *logger.Logger
	now     Clock
	compare func(hash, password []byte) error
	secret  []byte
	ttl     time.Duration
}

// missingUserHash is compared against when the email is unknown so both
// rejection paths pay for one bcrypt comparison.
var missingUserHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("no such user"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
})

// NewAuthService creates an auth service signing with secret.
func NewAuthService(repos Repositories, secret string, ttl time.Duration, log *logger.Logger) AuthService {
	return &authService{
		repos:   repos,
		log:     log.Component("auth_service"),
		now:     systemClock,
		compare: bcrypt.CompareHashAndPassword,
		secret:  []byte(secret),
		ttl:     ttl,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*Token, error) {
	user, err := s.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		_ = s.compare(missingUserHash(), []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := s.compare([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("Rejected login", map[string]interface{}{"user_id": user.ID.String()})
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	expires := now.Add(s.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Email:   user.Email,
		IsStaff: user.IsStaff,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.log.Info("Issued token", map[string]interface{}{"user_id": user.ID.String()})

	return &Token{AccessToken: signed, TokenType: "Bearer", ExpiresAt: expires}, nil
}

func (s *authService) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) Me(ctx context.Context, claims *Claims) (*models.User, error) {
	id, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func (s *authService) Register(ctx context.Context, email, password, fullName string, isStaff bool) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password too long", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		IsStaff:      isStaff,
	}
	if err := s.repos.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
