package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of user roles. It is stored as a plain string column,
// but code always compares the typed value, so no role lookup table needs to
// be seeded before the checks work.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// IsAdmin reports whether the role grants unrestricted visibility and
// mutation rights.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User corresponds to the users table.
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string         `json:"username" gorm:"column:username;unique;not null;size:80"`
	PasswordHash string         `json:"-" gorm:"column:password_hash;not null;size:255"` // never exposed over JSON
	Email        *string        `json:"email,omitempty" gorm:"column:email;size:255"`    // optional contact address for notifications
	Role         Role           `json:"role" gorm:"column:role;not null;default:'User';size:50"`
	CreatedAt    time.Time      `json:"created_at" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
