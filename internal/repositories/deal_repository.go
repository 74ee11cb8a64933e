package repositories

import (
	"errors"

	"github.com/deal_management/internal/models"
	"gorm.io/gorm"
)

// ErrRecordNotFound marks a missing row, reusing gorm's sentinel so callers
// can match either.
var ErrRecordNotFound = gorm.ErrRecordNotFound

// DealRepository defines the deal data store interface.
type DealRepository interface {
	// CreateDealWithInitialStatus persists the deal and its first status
	// history row in one transaction.
	CreateDealWithInitialStatus(deal *models.Deal, actorID uint, actorName string) (*models.Deal, error)
	GetDealByID(id uint) (*models.Deal, error)
	// UpdateDealWithHistory applies all four fields, and appends a history row
	// only when the stored status actually changed. The returned bool reports
	// whether it did.
	UpdateDealWithHistory(id uint, input models.DealInput, actorID uint, actorName string) (*models.Deal, bool, error)
	// DeleteDealCascade removes the deal together with its status history and
	// file attachments in one transaction.
	DeleteDealCascade(id uint) error
	// ListDeals returns every deal when ownerID is nil, otherwise only the
	// deals owned by *ownerID. Order is stable (creation order).
	ListDeals(ownerID *uint) ([]models.Deal, error)
	// ListDealsWithOwner is ListDeals joined with the owning user's name.
	ListDealsWithOwner(ownerID *uint) ([]models.DealWithOwner, error)
}

// gormDealRepository is the GORM implementation of DealRepository.
type gormDealRepository struct {
	db *gorm.DB
}

// NewGormDealRepository creates a new gormDealRepository instance.
func NewGormDealRepository(db *gorm.DB) DealRepository {
	return &gormDealRepository{db: db}
}

func (r *gormDealRepository) CreateDealWithInitialStatus(deal *models.Deal, actorID uint, actorName string) (*models.Deal, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(deal).Error; err != nil {
			return err
		}
		history := models.DealStatusHistory{
			DealID:          deal.ID,
			Status:          deal.Status,
			ChangedByUserID: actorID,
			ChangedByName:   actorName,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}
	return deal, nil
}

func (r *gormDealRepository) GetDealByID(id uint) (*models.Deal, error) {
	var deal models.Deal
	if err := r.db.First(&deal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &deal, nil
}

func (r *gormDealRepository) UpdateDealWithHistory(id uint, input models.DealInput, actorID uint, actorName string) (*models.Deal, bool, error) {
	var deal models.Deal
	statusChanged := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deal, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		statusChanged = deal.Status != input.Status

		// All four fields are applied unconditionally so re-submitting an
		// unchanged form is a supported no-op.
		deal.DealName = input.DealName
		deal.State = input.State
		deal.City = input.City
		deal.Status = input.Status
		if err := tx.Save(&deal).Error; err != nil {
			return err
		}

		if statusChanged {
			history := models.DealStatusHistory{
				DealID:          deal.ID,
				Status:          input.Status,
				ChangedByUserID: actorID,
				ChangedByName:   actorName,
			}
			if err := tx.Create(&history).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, false, err
	}
	return &deal, statusChanged, nil
}

func (r *gormDealRepository) DeleteDealCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var deal models.Deal
		if err := tx.First(&deal, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		if err := tx.Where("deal_id = ?", id).Delete(&models.DealStatusHistory{}).Error; err != nil {
			return err
		}
		// Cascade policy: attachments die with their deal, no orphans.
		if err := tx.Where("deal_id = ?", id).Delete(&models.FileAttachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&deal).Error
	})
}

func (r *gormDealRepository) ListDeals(ownerID *uint) ([]models.Deal, error) {
	var deals []models.Deal
	query := r.db.Model(&models.Deal{})
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}
	if err := query.Order("created_at asc, id asc").Find(&deals).Error; err != nil {
		return nil, err
	}
	return deals, nil
}

func (r *gormDealRepository) ListDealsWithOwner(ownerID *uint) ([]models.DealWithOwner, error) {
	var deals []models.DealWithOwner
	query := r.db.Model(&models.Deal{}).
		Select(
			"deals.id AS id",
			"deals.deal_name AS deal_name",
			"deals.state AS state",
			"deals.city AS city",
			"deals.status AS status",
			"deals.user_id AS user_id",
			"users.username AS owner_name",
			"deals.created_at AS created_at",
			"deals.updated_at AS updated_at",
		).
		Joins("LEFT JOIN users ON users.id = deals.user_id")
	if ownerID != nil {
		query = query.Where("deals.user_id = ?", *ownerID)
	}
	if err := query.Order("deals.created_at asc, deals.id asc").Find(&deals).Error; err != nil {
		return nil, err
	}
	return deals, nil
}
