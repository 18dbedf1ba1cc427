package db

import (
	"context"

	"github.com/penlight-studio/folio/biz/dal/model"

	"gorm.io/gorm"
)

// ProjectDAO handles CRUD operations for portfolio projects.
type ProjectDAO struct{}

func NewProjectDAO() *ProjectDAO { return &ProjectDAO{} }

func (dao *ProjectDAO) Create(ctx context.Context, db *gorm.DB, project *model.Project) error {
	if project == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Create(project).Error
}

func (dao *ProjectDAO) Update(ctx context.Context, db *gorm.DB, project *model.Project) error {
	if project == nil {
		return gorm.ErrInvalidData
	}
	result := db.WithContext(ctx).
		Model(&model.Project{}).
		Where("id = ?", project.ID).
		Updates(project)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (dao *ProjectDAO) DeleteByID(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&model.Project{}).Error
}

func (dao *ProjectDAO) GetByID(ctx context.Context, db *gorm.DB, id uint) (*model.Project, error) {
	var project model.Project
	if err := db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (dao *ProjectDAO) GetBySlug(ctx context.Context, db *gorm.DB, slug string) (*model.Project, error) {
	var project model.Project
	if err := db.WithContext(ctx).Where("slug = ?", slug).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (dao *ProjectDAO) List(ctx context.Context, db *gorm.DB, publishedOnly bool) ([]model.Project, error) {
	query := db.WithContext(ctx)
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	var projects []model.Project
	if err := query.Order("sort_order ASC, created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
