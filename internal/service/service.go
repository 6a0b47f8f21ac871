// Package service implements the business logic between the HTTP handlers
// and the storage layer: authentication, entity validation, the consistent
// snapshot cache and the report computations built on the planner package.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkral/budget-planner/internal/config"
	"github.com/mkral/budget-planner/internal/models"
	"github.com/mkral/budget-planner/internal/storage"
)

// ErrValidation marks errors caused by invalid input; handlers map it to
// a 400 response.
var ErrValidation = errors.New("validation failed")

// ErrInsufficientFunds is returned when a fund withdrawal exceeds the
// fund's balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Service handles business logic
type Service struct {
	store  storage.Store
	log    *logrus.Logger
	config *config.Config
	encKey []byte
	cache  *snapshotCache
}

// NewService initializes a new service
func NewService(store storage.Store, log *logrus.Logger, cfg *config.Config) (*Service, error) {
	key, err := cfg.EncryptionKeyBytes()
	if err != nil {
		return nil, err
	}
	return &Service{
		store:  store,
		log:    log,
		config: cfg,
		encKey: key,
		cache:  newSnapshotCache(),
	}, nil
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// ListUsers retrieves all registered users; used by the scheduled jobs
func (s *Service) ListUsers() ([]models.User, error) {
	return s.store.ListUsers()
}

// userIDFromContext extracts the authenticated user's id set by the auth
// middleware.
func userIDFromContext(ctx context.Context) (int64, error) {
	userIDStr, ok := ctx.Value("userID").(string)
	if !ok || userIDStr == "" {
		return 0, fmt.Errorf("user ID not found in context")
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}
	return userID, nil
}
