package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// StringList stores a slice of strings as a JSON text column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

// Project is a portfolio entry. Thumbnail and Images hold canonical
// filenames only; access URLs are derived at read time and never persisted.
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt   time.Time      `json:"created_at,omitempty"`
	UpdatedAt   time.Time      `json:"updated_at,omitempty"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Slug        string         `gorm:"column:slug;uniqueIndex:idx_project_slug" json:"slug,omitempty"`
	Title       string         `gorm:"column:title" json:"title,omitempty"`
	Description string         `gorm:"column:description;type:text" json:"description,omitempty"`
	Thumbnail   string         `gorm:"column:thumbnail" json:"thumbnail,omitempty"`
	Images      StringList     `gorm:"column:images;type:text" json:"images,omitempty"`
	Tags        StringList     `gorm:"column:tags;type:text" json:"tags,omitempty"`
	Link        string         `gorm:"column:link" json:"link,omitempty"`
	SortOrder   int            `gorm:"column:sort_order" json:"sort_order,omitempty"`
	Published   bool           `gorm:"column:published" json:"published,omitempty"`
}

// TableName overrides gorm to use the project table.
func (Project) TableName() string {
	return "project"
}
