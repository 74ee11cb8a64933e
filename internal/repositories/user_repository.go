package repositories

import (
	"errors"
	"strings"

	"github.com/deal_management/internal/models"
	"gorm.io/gorm"
)

// ErrUsernameConflict marks an attempt to create a user whose username is
// already taken.
var ErrUsernameConflict = errors.New("a user with this username already exists")

// UserRepository defines the user data store interface.
type UserRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}

// gormUserRepository is the GORM implementation of UserRepository.
type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new gormUserRepository instance.
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) CreateUser(user *models.User) (*models.User, error) {
	var existing models.User
	if err := r.db.Where("username = ?", user.Username).First(&existing).Error; err == nil {
		return nil, ErrUsernameConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.Create(user).Error; err != nil {
		// The race between the check above and the insert still surfaces as a
		// unique constraint violation.
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "unique constraint") || strings.Contains(lower, "duplicate key") {
			return nil, ErrUsernameConflict
		}
		return nil, err
	}
	return user, nil
}

func (r *gormUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}
