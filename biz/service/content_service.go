package service

import (
	"context"
	"errors"

	"github.com/penlight-studio/folio/biz/dal/model"
	"github.com/penlight-studio/folio/pkg/storage"
)

// ContentView is a site content entry with a derived URL for media kinds.
type ContentView struct {
	model.SiteContent
	URL string `json:"url,omitempty"`
}

// SetContent stores a site copy key-value. Media values are normalized to
// canonical filenames at write time.
func (s *Service) SetContent(ctx context.Context, content *model.SiteContent) (*ContentView, error) {
	if content == nil || content.Key == "" {
		return nil, errors.New("content key required")
	}
	if content.Kind == "" {
		content.Kind = model.ContentKindText
	}
	if content.Kind == model.ContentKindMedia {
		content.Value = storage.Normalize(content.Value)
	}
	if err := s.logic.UpsertContent(ctx, content); err != nil {
		return nil, err
	}
	return s.decorateContent(ctx, content), nil
}

func (s *Service) GetContent(ctx context.Context, key string) (*ContentView, error) {
	content, err := s.logic.GetContent(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.decorateContent(ctx, content), nil
}

func (s *Service) ListContent(ctx context.Context) ([]*ContentView, error) {
	contents, err := s.logic.ListContent(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*ContentView, 0, len(contents))
	for i := range contents {
		views = append(views, s.decorateContent(ctx, &contents[i]))
	}
	return views, nil
}

// DeleteContent removes the key; media values also drop their stored file.
func (s *Service) DeleteContent(ctx context.Context, key string) error {
	content, err := s.logic.GetContent(ctx, key)
	if err != nil {
		if errors.Is(err, ErrContentNotFound) {
			return nil
		}
		return err
	}
	if err := s.logic.DeleteContent(ctx, key); err != nil {
		return err
	}
	if content.Kind == model.ContentKindMedia {
		s.deleteFiles(ctx, []string{content.Value})
	}
	return nil
}

func (s *Service) decorateContent(ctx context.Context, content *model.SiteContent) *ContentView {
	view := &ContentView{SiteContent: *content}
	if content.Kind == model.ContentKindMedia && content.Value != "" {
		view.URL = s.store.URLFor(ctx, content.Value)
	}
	return view
}
