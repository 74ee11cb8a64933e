package models

import (
	"time"

	"gorm.io/gorm"
)

// Deal corresponds to the deals table. The owner reference is fixed at
// creation and never reassigned afterwards.
type Deal struct {
	ID        uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	DealName  string         `json:"deal_name" gorm:"column:deal_name;not null;size:100"`
	State     string         `json:"state" gorm:"column:state;not null;size:50"`
	City      string         `json:"city" gorm:"column:city;not null;size:100"`
	Status    string         `json:"status" gorm:"column:status;not null;size:50"` // free-form, no fixed enumeration
	UserID    uint           `json:"user_id" gorm:"column:user_id;not null;index"` // owning user
	CreatedAt time.Time      `json:"created_at" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for the Deal model
func (Deal) TableName() string {
	return "deals"
}

// DealInput carries the four caller-supplied deal fields through the service
// and repository layers. All of them are required on create and update.
type DealInput struct {
	DealName string
	State    string
	City     string
	Status   string
}

// DealWithOwner is the read model for queries that join the owning user, so
// analytics can group by display name without a second query.
type DealWithOwner struct {
	ID        uint      `json:"id" gorm:"column:id"`
	DealName  string    `json:"deal_name" gorm:"column:deal_name"`
	State     string    `json:"state" gorm:"column:state"`
	City      string    `json:"city" gorm:"column:city"`
	Status    string    `json:"status" gorm:"column:status"`
	UserID    uint      `json:"user_id" gorm:"column:user_id"`
	OwnerName string    `json:"owner_name" gorm:"column:owner_name"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}
