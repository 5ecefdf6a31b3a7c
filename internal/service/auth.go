package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"soil-advisor/internal/domain"
	"soil-advisor/internal/repository"
)

// AuthService handles registration, login and session token issuance.
type AuthService struct {
	userRepo      repository.UserRepository
	sessionSecret []byte
	sessionExpiry time.Duration
}

// NewAuthService creates an AuthService. sessionSecretKey signs the session
// cookie payload and must come from configuration; sessionExpiryHours bounds
// how long a login stays valid.
func NewAuthService(userRepo repository.UserRepository, sessionSecretKey string, sessionExpiryHours int) (*AuthService, error) {
	if userRepo == nil {
		panic("UserRepository cannot be nil for AuthService")
	}
	if sessionSecretKey == "" {
		return nil, fmt.Errorf("session secret key cannot be empty")
	}
	if sessionExpiryHours <= 0 {
		sessionExpiryHours = 24
	}
	return &AuthService{
		userRepo:      userRepo,
		sessionSecret: []byte(sessionSecretKey),
		sessionExpiry: time.Duration(sessionExpiryHours) * time.Hour,
	}, nil
}

// Register creates a new account. The unique index on username decides the
// race between concurrent registrations; this method only maps the outcome.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	logCtx := logrus.WithField("username", username)

	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required")
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during registration")
		return nil, ErrInternalServer
	}

	user := &domain.User{
		Username: username,
		Password: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.Warn("Registration failed: username already exists")
			return nil, ErrUsernameTaken
		}
		logCtx.WithError(err).Error("Database error during user creation")
		return nil, ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User registered successfully")
	user.Password = ""
	return user, nil
}

// Login authenticates a user and returns a signed session token. Failures
// are uniform: callers get ErrAuthenticationFailed whether the user is
// missing or the password is wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	logCtx := logrus.WithField("username", username)

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Login attempt failed: user not found")
		} else {
			logCtx.WithError(err).Warn("Login attempt failed: error finding user")
		}
		return "", ErrAuthenticationFailed
	}
	if user == nil {
		logCtx.Warn("Login attempt failed: repo returned nil user without error")
		return "", ErrAuthenticationFailed
	}

	if !checkPassword(password, user.Password) {
		logCtx.Warn("Login attempt failed: invalid password")
		return "", ErrAuthenticationFailed
	}

	token, err := s.issueSessionToken(user.Username)
	if err != nil {
		logCtx.WithError(err).Error("Failed to sign session token during login")
		return "", ErrInternalServer
	}

	logCtx.Info("User logged in successfully")
	return token, nil
}

// SessionTTL reports the configured session lifetime, used to set the cookie
// max-age alongside the token expiry.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionExpiry
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash from password: %w", err)
	}
	return string(bytes), nil
}

func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// issueSessionToken signs the session identity. The session carries the
// username only; it is not a capability token.
func (s *AuthService) issueSessionToken(username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(s.sessionExpiry).Unix(),
		"iat":      time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.sessionSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}
