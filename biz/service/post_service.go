package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/penlight-studio/folio/biz/dal/model"
	"github.com/penlight-studio/folio/pkg/storage"
)

// PostView is a post decorated with derived access URLs for its thumbnail
// and media blocks.
type PostView struct {
	model.Post
	ThumbnailURL string        `json:"thumbnail_url,omitempty"`
	BlockViews   []model.Block `json:"block_views,omitempty"`
}

// CreatePost normalizes the thumbnail and media block references and
// persists the post.
func (s *Service) CreatePost(ctx context.Context, post *model.Post) (*PostView, error) {
	if post == nil {
		return nil, errors.New("post payload required")
	}
	normalizePostRefs(post)
	if err := s.logic.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return s.decoratePost(ctx, post), nil
}

func (s *Service) UpdatePost(ctx context.Context, post *model.Post) (*PostView, error) {
	if post == nil || post.ID == 0 {
		return nil, errors.New("post id required")
	}
	normalizePostRefs(post)
	if err := s.logic.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	updated, err := s.logic.GetPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return s.decoratePost(ctx, updated), nil
}

// DeletePost removes the record, then its media files with per-file error
// isolation.
func (s *Service) DeletePost(ctx context.Context, id uint) error {
	post, err := s.logic.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if err := s.logic.DeletePost(ctx, id); err != nil {
		return err
	}
	refs := []string{post.Thumbnail}
	for _, block := range parseBlocks(post.Blocks) {
		if block.Type == "image" || block.Type == "video" {
			refs = append(refs, block.Content)
		}
	}
	s.deleteFiles(ctx, refs)
	return nil
}

func (s *Service) GetPost(ctx context.Context, id uint) (*PostView, error) {
	post, err := s.logic.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.decoratePost(ctx, post), nil
}

func (s *Service) GetPostBySlug(ctx context.Context, slug string) (*PostView, error) {
	post, err := s.logic.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.decoratePost(ctx, post), nil
}

func (s *Service) ListPosts(ctx context.Context, publishedOnly bool) ([]*PostView, error) {
	posts, err := s.logic.ListPosts(ctx, publishedOnly)
	if err != nil {
		return nil, err
	}
	views := make([]*PostView, 0, len(posts))
	for i := range posts {
		views = append(views, s.decoratePost(ctx, &posts[i]))
	}
	return views, nil
}

// normalizePostRefs reduces the thumbnail and every media block content to
// canonical filenames. External embed links pass through Normalize unchanged,
// so "embed" blocks keep their URLs.
func normalizePostRefs(post *model.Post) {
	post.Thumbnail = storage.Normalize(post.Thumbnail)
	blocks := parseBlocks(post.Blocks)
	if blocks == nil {
		return
	}
	changed := false
	for i, block := range blocks {
		if block.Type == "image" || block.Type == "video" {
			normalized := storage.Normalize(block.Content)
			if normalized != block.Content {
				blocks[i].Content = normalized
				changed = true
			}
		}
	}
	if changed {
		if data, err := json.Marshal(blocks); err == nil {
			post.Blocks = string(data)
		}
	}
}

func (s *Service) decoratePost(ctx context.Context, post *model.Post) *PostView {
	view := &PostView{Post: *post}
	if post.Thumbnail != "" {
		view.ThumbnailURL = s.store.URLFor(ctx, post.Thumbnail)
	}
	for _, block := range parseBlocks(post.Blocks) {
		if block.Type == "image" || block.Type == "video" {
			block.Content = s.store.URLFor(ctx, block.Content)
		}
		view.BlockViews = append(view.BlockViews, block)
	}
	return view
}

// parseBlocks tolerates empty and malformed block JSON; bad payloads decay
// to no blocks rather than failing the whole record.
func parseBlocks(raw string) []model.Block {
	if raw == "" {
		return nil
	}
	var blocks []model.Block
	if err := json.Unmarshal([]byte(raw), &blocks); err != nil {
		return nil
	}
	return blocks
}
