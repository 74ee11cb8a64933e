package repositories

import (
	"errors"

	"github.com/deal_management/internal/models"
	"gorm.io/gorm"
)

// FileRepository defines the file attachment data store interface.
type FileRepository interface {
	CreateFile(file *models.FileAttachment) (*models.FileAttachment, error)
	GetFileByID(id uint) (*models.FileAttachment, error)
	ListFilesForDeal(dealID uint) ([]models.FileAttachment, error)
	DeleteFile(id uint) error
}

// gormFileRepository is the GORM implementation of FileRepository.
type gormFileRepository struct {
	db *gorm.DB
}

// NewGormFileRepository creates a new gormFileRepository instance.
func NewGormFileRepository(db *gorm.DB) FileRepository {
	return &gormFileRepository{db: db}
}

func (r *gormFileRepository) CreateFile(file *models.FileAttachment) (*models.FileAttachment, error) {
	if err := r.db.Create(file).Error; err != nil {
		return nil, err
	}
	return file, nil
}

func (r *gormFileRepository) GetFileByID(id uint) (*models.FileAttachment, error) {
	var file models.FileAttachment
	if err := r.db.First(&file, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *gormFileRepository) ListFilesForDeal(dealID uint) ([]models.FileAttachment, error) {
	var files []models.FileAttachment
	err := r.db.Where("deal_id = ?", dealID).
		Order("created_at asc, id asc").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *gormFileRepository) DeleteFile(id uint) error {
	result := r.db.Delete(&models.FileAttachment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
