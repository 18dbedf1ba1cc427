package service

import (
	"context"
	"errors"

	"github.com/penlight-studio/folio/biz/dal/model"
	"github.com/penlight-studio/folio/pkg/storage"
)

// ProjectView is a project decorated with derived access URLs. URLs are
// computed per request and never written back to the database.
type ProjectView struct {
	model.Project
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	ImageURLs    []string `json:"image_urls,omitempty"`
}

// CreateProject normalizes all media references to canonical filenames and
// persists the project. Records written through here stay resolvable after
// any later backend migration.
func (s *Service) CreateProject(ctx context.Context, project *model.Project) (*ProjectView, error) {
	if project == nil {
		return nil, errors.New("project payload required")
	}
	normalizeProjectRefs(project)
	if err := s.logic.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return s.decorateProject(ctx, project), nil
}

// UpdateProject normalizes media references and updates the record.
func (s *Service) UpdateProject(ctx context.Context, project *model.Project) (*ProjectView, error) {
	if project == nil || project.ID == 0 {
		return nil, errors.New("project id required")
	}
	normalizeProjectRefs(project)
	if err := s.logic.UpdateProject(ctx, project); err != nil {
		return nil, err
	}
	updated, err := s.logic.GetProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return s.decorateProject(ctx, updated), nil
}

// DeleteProject removes the record and then its stored files. Per-file
// delete failures are logged and skipped; the record deletion never rolls
// back because of storage trouble.
func (s *Service) DeleteProject(ctx context.Context, id uint) error {
	project, err := s.logic.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if err := s.logic.DeleteProject(ctx, id); err != nil {
		return err
	}
	refs := append([]string{project.Thumbnail}, project.Images...)
	s.deleteFiles(ctx, refs)
	return nil
}

func (s *Service) GetProject(ctx context.Context, id uint) (*ProjectView, error) {
	project, err := s.logic.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.decorateProject(ctx, project), nil
}

func (s *Service) ListProjects(ctx context.Context, publishedOnly bool) ([]*ProjectView, error) {
	projects, err := s.logic.ListProjects(ctx, publishedOnly)
	if err != nil {
		return nil, err
	}
	views := make([]*ProjectView, 0, len(projects))
	for i := range projects {
		views = append(views, s.decorateProject(ctx, &projects[i]))
	}
	return views, nil
}

// normalizeProjectRefs reduces every media reference to its canonical
// filename before it is persisted. Clients routinely send whatever URL form
// the admin UI held at edit time.
func normalizeProjectRefs(project *model.Project) {
	project.Thumbnail = storage.Normalize(project.Thumbnail)
	for i, img := range project.Images {
		project.Images[i] = storage.Normalize(img)
	}
}

func (s *Service) decorateProject(ctx context.Context, project *model.Project) *ProjectView {
	view := &ProjectView{Project: *project}
	if project.Thumbnail != "" {
		view.ThumbnailURL = s.store.URLFor(ctx, project.Thumbnail)
	}
	for _, img := range project.Images {
		view.ImageURLs = append(view.ImageURLs, s.store.URLFor(ctx, img))
	}
	return view
}
