package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/deal_management/internal/models"
	"github.com/deal_management/internal/repositories"
	"github.com/deal_management/pkg/utils"
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords, deliberately undistinguished.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserService defines registration and credential checks.
type UserService interface {
	Register(username, password, confirmPassword, emailAddr string) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
}

// userService is the UserService implementation.
type userService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new userService instance.
func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Register creates a regular (non-admin) account with a bcrypt-hashed
// credential. The contact email is optional; when present its format is
// checked.
func (s *userService) Register(username, password, confirmPassword, emailAddr string) (*models.User, error) {
	if err := firstMissingField([]requiredField{
		{name: "username", value: username},
		{name: "password", value: password},
	}); err != nil {
		return nil, err
	}
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}
	if !utils.ValidateEmailFormat(emailAddr) {
		return nil, ErrInvalidEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if emailAddr != "" {
		user.Email = &emailAddr
	}

	created, err := s.userRepo.CreateUser(user)
	if err != nil {
		if errors.Is(err, repositories.ErrUsernameConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return created, nil
}

func (s *userService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
