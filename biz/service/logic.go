package service

import (
	"context"
	"errors"

	"github.com/penlight-studio/folio/biz/dal/db"
	"github.com/penlight-studio/folio/biz/dal/model"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrContentNotFound = errors.New("content not found")
	ErrSlugExists      = errors.New("slug already in use")
)

// Logic contains business rules on top of data persistence.
type Logic struct {
	db         *gorm.DB
	projectDAO *db.ProjectDAO
	postDAO    *db.PostDAO
	contentDAO *db.ContentDAO
}

func NewLogic(dbConn *gorm.DB) *Logic {
	return &Logic{
		db:         dbConn,
		projectDAO: db.NewProjectDAO(),
		postDAO:    db.NewPostDAO(),
		contentDAO: db.NewContentDAO(),
	}
}

// --------------------- Projects ---------------------

func (l *Logic) CreateProject(ctx context.Context, project *model.Project) error {
	if project.Slug != "" {
		if _, err := l.projectDAO.GetBySlug(ctx, l.db, project.Slug); err == nil {
			return ErrSlugExists
		}
	}
	return l.projectDAO.Create(ctx, l.db, project)
}

func (l *Logic) UpdateProject(ctx context.Context, project *model.Project) error {
	err := l.projectDAO.Update(ctx, l.db, project)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProjectNotFound
	}
	return err
}

func (l *Logic) DeleteProject(ctx context.Context, id uint) error {
	return l.projectDAO.DeleteByID(ctx, l.db, id)
}

func (l *Logic) GetProject(ctx context.Context, id uint) (*model.Project, error) {
	project, err := l.projectDAO.GetByID(ctx, l.db, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	return project, err
}

func (l *Logic) ListProjects(ctx context.Context, publishedOnly bool) ([]model.Project, error) {
	return l.projectDAO.List(ctx, l.db, publishedOnly)
}

// --------------------- Posts ---------------------

func (l *Logic) CreatePost(ctx context.Context, post *model.Post) error {
	if post.Slug != "" {
		if _, err := l.postDAO.GetBySlug(ctx, l.db, post.Slug); err == nil {
			return ErrSlugExists
		}
	}
	return l.postDAO.Create(ctx, l.db, post)
}

func (l *Logic) UpdatePost(ctx context.Context, post *model.Post) error {
	err := l.postDAO.Update(ctx, l.db, post)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPostNotFound
	}
	return err
}

func (l *Logic) DeletePost(ctx context.Context, id uint) error {
	return l.postDAO.DeleteByID(ctx, l.db, id)
}

func (l *Logic) GetPost(ctx context.Context, id uint) (*model.Post, error) {
	post, err := l.postDAO.GetByID(ctx, l.db, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	return post, err
}

func (l *Logic) GetPostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	post, err := l.postDAO.GetBySlug(ctx, l.db, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	return post, err
}

func (l *Logic) ListPosts(ctx context.Context, publishedOnly bool) ([]model.Post, error) {
	return l.postDAO.List(ctx, l.db, publishedOnly)
}

// --------------------- Site content ---------------------

func (l *Logic) UpsertContent(ctx context.Context, content *model.SiteContent) error {
	return l.contentDAO.Upsert(ctx, l.db, content)
}

func (l *Logic) GetContent(ctx context.Context, key string) (*model.SiteContent, error) {
	content, err := l.contentDAO.GetByKey(ctx, l.db, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContentNotFound
	}
	return content, err
}

func (l *Logic) ListContent(ctx context.Context) ([]model.SiteContent, error) {
	return l.contentDAO.List(ctx, l.db)
}

func (l *Logic) DeleteContent(ctx context.Context, key string) error {
	return l.contentDAO.DeleteByKey(ctx, l.db, key)
}
