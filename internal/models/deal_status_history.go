package models

import (
	"time"

	"gorm.io/gorm"
)

// DealStatusHistory is the append-only audit trail of status transitions. A
// row is written whenever a deal's status value actually changes, including
// the initial status at creation. Rows are never updated, and only removed by
// the cascade when the parent deal is deleted.
type DealStatusHistory struct {
	ID              uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	DealID          uint           `json:"deal_id" gorm:"column:deal_id;not null;index"`
	Status          string         `json:"status" gorm:"column:status;not null;size:50"`
	ChangedByUserID uint           `json:"changed_by_user_id" gorm:"column:changed_by_user_id;not null"`
	ChangedByName   string         `json:"changed_by" gorm:"column:changed_by_name;not null;size:80"` // denormalized so history renders without a join
	CreatedAt       time.Time      `json:"changed_at" gorm:"column:created_at;not null;autoCreateTime"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for the DealStatusHistory model
func (DealStatusHistory) TableName() string {
	return "deal_status_history"
}
