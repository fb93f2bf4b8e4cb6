package services

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/questlog/questlog/internal/errors"
	"github.com/questlog/questlog/internal/models"
	"github.com/questlog/questlog/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = apperrors.Validation("Username already taken.")
	ErrUsernameRequired   = apperrors.Validation("Username is a required field.")
	ErrPasswordMismatch   = apperrors.Validation("Password and Confirm Password must match.")
	ErrInvalidCredentials = apperrors.Validation("Invalid username or password.")
	ErrUserNotFound       = apperrors.NotFound("User not found.")
)

// AuthService handles sign-up and sign-in business logic.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   *PasswordHasher
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, hasher *PasswordHasher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username        string
	Password        string
	ConfirmPassword string
}

// Signup validates the input and creates the user. Username uniqueness is
// case-insensitive. No user or session state exists after a failed signup.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Unexpected(fmt.Errorf("failed to check username: %w", err))
	}

	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.Unexpected(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, apperrors.Unexpected(fmt.Errorf("failed to create user: %w", err))
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user. Unknown
// username and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperrors.Unexpected(fmt.Errorf("failed to find user: %w", err))
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperrors.Unexpected(fmt.Errorf("failed to find user: %w", err))
	}

	return user, nil
}
