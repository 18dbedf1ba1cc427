package db

import (
	"context"

	"github.com/penlight-studio/folio/biz/dal/model"

	"gorm.io/gorm"
)

// ContentDAO handles the site copy key-value store.
type ContentDAO struct{}

func NewContentDAO() *ContentDAO { return &ContentDAO{} }

// Upsert creates the key or replaces its value if it already exists.
func (dao *ContentDAO) Upsert(ctx context.Context, db *gorm.DB, content *model.SiteContent) error {
	if content == nil {
		return gorm.ErrInvalidData
	}
	var existing model.SiteContent
	err := db.WithContext(ctx).Where("key = ?", content.Key).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return db.WithContext(ctx).Create(content).Error
	}
	if err != nil {
		return err
	}
	return db.WithContext(ctx).
		Model(&model.SiteContent{}).
		Where("key = ?", content.Key).
		Updates(map[string]interface{}{"value": content.Value, "kind": content.Kind}).Error
}

func (dao *ContentDAO) GetByKey(ctx context.Context, db *gorm.DB, key string) (*model.SiteContent, error) {
	var content model.SiteContent
	if err := db.WithContext(ctx).Where("key = ?", key).First(&content).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

func (dao *ContentDAO) List(ctx context.Context, db *gorm.DB) ([]model.SiteContent, error) {
	var contents []model.SiteContent
	if err := db.WithContext(ctx).Order("key ASC").Find(&contents).Error; err != nil {
		return nil, err
	}
	return contents, nil
}

func (dao *ContentDAO) DeleteByKey(ctx context.Context, db *gorm.DB, key string) error {
	return db.WithContext(ctx).Unscoped().Where("key = ?", key).Delete(&model.SiteContent{}).Error
}
