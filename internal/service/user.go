package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"messenger/internal/models"
	"messenger/internal/password"
	"messenger/internal/repository"
	"messenger/internal/token"
)

var ( // Define custom errors
	ErrEmailTaken         = errors.New("Email already taken")
	ErrInvalidCredentials = errors.New("Incorrect email or password")
)

// MissingFieldError identifies the first absent required field of a request.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing '%s' in request body", e.Field)
}

// IsValidationError reports whether err is safe to surface verbatim as a 400
// body. Storage and infrastructure errors are not.
func IsValidationError(err error) bool {
	var missing *MissingFieldError
	return errors.As(err, &missing) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, password.ErrTooShort) ||
		errors.Is(err, password.ErrTooLong) ||
		errors.Is(err, password.ErrPaddedWhitespace) ||
		errors.Is(err, password.ErrInsufficientComplexity)
}

// RegisterInput is the raw field set of a registration request. Nil pointers
// mark absent fields.
type RegisterInput struct {
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	FullName    *string `json:"full_name"`
	Deactivated *string `json:"deactivated"`
}

// UpdateInput is a partial update of the mutable user fields. Every field is
// independently optional.
type UpdateInput struct {
	FullName    *string `json:"full_name"`
	Password    *string `json:"password"`
	Deactivated *string `json:"deactivated"`
}

type UserService interface {
	Register(input RegisterInput) (*models.User, error)
	Update(userID int64, input UpdateInput) error
	Login(email, plaintext string) (string, error)
	Refresh(user *models.User) (string, error)
}

type userService struct {
	repo   repository.UserRepository
	hasher password.Hasher
	issuer *token.Issuer
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, hasher password.Hasher, issuer *token.Issuer, logger *zap.Logger) UserService {
	return &userService{
		repo:   repo,
		hasher: hasher,
		issuer: issuer,
		logger: logger,
	}
}

// Register validates the raw input, hashes the password and persists the new
// user. The returned record carries the digest only in its unserialized
// Password field.
func (s *userService) Register(input RegisterInput) (*models.User, error) {
	// Required fields, checked in declared order: the first missing one wins.
	required := []struct {
		name  string
		value *string
	}{
		{"email", input.Email},
		{"password", input.Password},
		{"full_name", input.FullName},
	}
	for _, field := range required {
		if field.value == nil {
			return nil, &MissingFieldError{Field: field.name}
		}
	}

	if err := password.Validate(*input.Password); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(*input.Email)
	if err != nil {
		s.logger.Error("Failed to check email uniqueness", zap.Error(err))
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	digest, err := s.hasher.Hash(*input.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:       *input.Email,
		FullName:    *input.FullName,
		Password:    digest,
		Deactivated: "false",
	}
	if input.Deactivated != nil {
		user.Deactivated = *input.Deactivated
	}

	err = s.repo.CreateUser(user)
	if err != nil {
		// The probe above raced another registration; the unique constraint
		// settles it.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Update applies a partial update to the given user. It is only ever called
// with the token-resolved identity, never an arbitrary target id.
func (s *userService) Update(userID int64, input UpdateInput) error {
	update := repository.UserUpdate{
		FullName:    input.FullName,
		Deactivated: input.Deactivated,
	}

	if input.Password != nil {
		if err := password.Validate(*input.Password); err != nil {
			return err
		}
		digest, err := s.hasher.Hash(*input.Password)
		if err != nil {
			s.logger.Error("Failed to hash password", zap.Error(err))
			return fmt.Errorf("failed to hash password: %w", err)
		}
		update.Password = &digest
	}

	if update.FullName == nil && update.Password == nil && update.Deactivated == nil {
		return nil // Nothing to change
	}

	err := s.repo.UpdateUser(userID, update)
	if err != nil {
		s.logger.Error("Failed to update user", zap.Int64("id", userID), zap.Error(err))
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// Login verifies the credentials and issues a bearer token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *userService) Login(email, plaintext string) (string, error) {
	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		s.logger.Error("Failed to get user by email", zap.Error(err))
		return "", fmt.Errorf("failed to retrieve user: %w", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if !s.hasher.Verify(plaintext, user.Password) {
		return "", ErrInvalidCredentials
	}

	tokenString, err := s.issuer.Issue(user)
	if err != nil {
		s.logger.Error("Failed to generate JWT token", zap.Error(err))
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in successfully.", zap.Int64("id", user.ID))
	return tokenString, nil
}

// Refresh issues a fresh token for an already-authenticated user.
func (s *userService) Refresh(user *models.User) (string, error) {
	tokenString, err := s.issuer.Issue(user)
	if err != nil {
		s.logger.Error("Failed to generate JWT token", zap.Error(err))
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}
