package model

import (
	"time"

	"gorm.io/gorm"
)

// SiteContent is a key-value pair of site copy (about text, hero image,
// social links). Values of media keys hold canonical filenames.
type SiteContent struct {
	ID        uint           `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitempty"`
	UpdatedAt time.Time      `json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Key       string         `gorm:"column:key;uniqueIndex:idx_content_key" json:"key,omitempty"`
	Value     string         `gorm:"column:value;type:text" json:"value,omitempty"`
	Kind      string         `gorm:"column:kind" json:"kind,omitempty"`
}

// TableName overrides gorm to use the site_content table.
func (SiteContent) TableName() string {
	return "site_content"
}

// content kinds
const (
	ContentKindText  = "text"
	ContentKindMedia = "media"
)
