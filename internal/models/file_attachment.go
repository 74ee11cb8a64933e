package models

import (
	"time"

	"gorm.io/gorm"
)

// FileAttachment corresponds to the file_attachments table. The link is an
// external reference (Dropbox in practice) stored as given; only non-emptiness
// is checked, not URL well-formedness.
type FileAttachment struct {
	ID          uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	DealID      uint           `json:"deal_id" gorm:"column:deal_id;not null;index"`
	FileName    string         `json:"file_name" gorm:"column:file_name;not null;size:100"`
	DropboxLink string         `json:"dropbox_link" gorm:"column:dropbox_link;not null;size:500"`
	UploadDate  time.Time      `json:"upload_date" gorm:"column:upload_date;not null"`
	CreatedAt   time.Time      `json:"created_at" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for the FileAttachment model
func (FileAttachment) TableName() string {
	return "file_attachments"
}
