package model

import (
	"time"

	"gorm.io/gorm"
)

// Post is a blog entry. Blocks is a JSON array of content blocks; media
// blocks reference files by canonical filename.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitempty"`
	UpdatedAt time.Time      `json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Slug      string         `gorm:"column:slug;uniqueIndex:idx_post_slug" json:"slug,omitempty"`
	Title     string         `gorm:"column:title" json:"title,omitempty"`
	Summary   string         `gorm:"column:summary;type:text" json:"summary,omitempty"`
	Thumbnail string         `gorm:"column:thumbnail" json:"thumbnail,omitempty"`
	Blocks    string         `gorm:"column:blocks;type:text" json:"blocks,omitempty"`
	Published bool           `gorm:"column:published" json:"published,omitempty"`
}

// TableName overrides gorm to use the post table.
func (Post) TableName() string {
	return "post"
}

// Block is one unit of post content. Type is "text", "image" or "video";
// for media types Content is a canonical filename, for "embed" it is an
// external URL kept verbatim.
type Block struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}
