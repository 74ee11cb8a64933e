package repositories

import (
	"github.com/deal_management/internal/models"
	"gorm.io/gorm"
)

// StatusHistoryRepository is the read side of the status-history ledger.
// Writes happen only inside the deal repository's transactions, so the ledger
// stays consistent with the deal row it belongs to.
type StatusHistoryRepository interface {
	HistoryForDeal(dealID uint) ([]models.DealStatusHistory, error)
}

// gormStatusHistoryRepository is the GORM implementation of StatusHistoryRepository.
type gormStatusHistoryRepository struct {
	db *gorm.DB
}

// NewGormStatusHistoryRepository creates a new gormStatusHistoryRepository instance.
func NewGormStatusHistoryRepository(db *gorm.DB) StatusHistoryRepository {
	return &gormStatusHistoryRepository{db: db}
}

// HistoryForDeal returns the deal's transitions most-recent-first. The id
// tiebreak keeps the order deterministic when two entries share a timestamp.
func (r *gormStatusHistoryRepository) HistoryForDeal(dealID uint) ([]models.DealStatusHistory, error) {
	var entries []models.DealStatusHistory
	err := r.db.Where("deal_id = ?", dealID).
		Order("created_at desc, id desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
