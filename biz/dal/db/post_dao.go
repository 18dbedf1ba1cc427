package db

import (
	"context"

	"github.com/penlight-studio/folio/biz/dal/model"

	"gorm.io/gorm"
)

// PostDAO handles CRUD operations for blog posts.
type PostDAO struct{}

func NewPostDAO() *PostDAO { return &PostDAO{} }

func (dao *PostDAO) Create(ctx context.Context, db *gorm.DB, post *model.Post) error {
	if post == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Create(post).Error
}

func (dao *PostDAO) Update(ctx context.Context, db *gorm.DB, post *model.Post) error {
	if post == nil {
		return gorm.ErrInvalidData
	}
	result := db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", post.ID).
		Updates(post)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (dao *PostDAO) DeleteByID(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&model.Post{}).Error
}

func (dao *PostDAO) GetByID(ctx context.Context, db *gorm.DB, id uint) (*model.Post, error) {
	var post model.Post
	if err := db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (dao *PostDAO) GetBySlug(ctx context.Context, db *gorm.DB, slug string) (*model.Post, error) {
	var post model.Post
	if err := db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (dao *PostDAO) List(ctx context.Context, db *gorm.DB, publishedOnly bool) ([]model.Post, error) {
	query := db.WithContext(ctx)
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	var posts []model.Post
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
