package db

import (
	"context"
	"errors"
	"testing"

	"github.com/penlight-studio/folio/biz/dal/model"
	"gorm.io/gorm"
)

func TestPostDAO_CreateAndGet(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewPostDAO()
	ctx := context.Background()

	post := &model.Post{
		Slug:      "hello-world",
		Title:     "Hello World",
		Summary:   "First post",
		Thumbnail: "1700000000-dddd4444.webp",
		Blocks:    `[{"type":"text","content":"welcome"},{"type":"image","content":"1700000001-eeee5555.png"}]`,
		Published: true,
	}
	if err := dao.Create(ctx, db, post); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post.ID == 0 {
		t.Error("Expected ID to be set after creation")
	}

	t.Run("ByID", func(t *testing.T) {
		found, err := dao.GetByID(ctx, db, post.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if found.Slug != "hello-world" {
			t.Errorf("Expected slug hello-world, got %s", found.Slug)
		}
	})

	t.Run("BySlug", func(t *testing.T) {
		found, err := dao.GetBySlug(ctx, db, "hello-world")
		if err != nil {
			t.Fatalf("GetBySlug failed: %v", err)
		}
		if found.ID != post.ID {
			t.Errorf("Expected ID %d, got %d", post.ID, found.ID)
		}
	})

	t.Run("MissingSlug", func(t *testing.T) {
		_, err := dao.GetBySlug(ctx, db, "no-such-post")
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Errorf("Expected ErrRecordNotFound, got %v", err)
		}
	})

	t.Run("NilEntity", func(t *testing.T) {
		if err := dao.Create(ctx, db, nil); err == nil {
			t.Error("Expected error for nil entity")
		}
	})
}

func TestPostDAO_UpdateAndDelete(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewPostDAO()
	ctx := context.Background()

	post := &model.Post{Slug: "to-edit", Title: "Before", Published: true}
	if err := dao.Create(ctx, db, post); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	post.Title = "After"
	if err := dao.Update(ctx, db, post); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	found, err := dao.GetByID(ctx, db, post.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.Title != "After" {
		t.Errorf("Expected updated title, got %s", found.Title)
	}

	if err := dao.Update(ctx, db, &model.Post{ID: 99999, Title: "Ghost"}); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound for missing post, got %v", err)
	}

	if err := dao.DeleteByID(ctx, db, post.ID); err != nil {
		t.Fatalf("DeleteByID failed: %v", err)
	}
	if _, err := dao.GetByID(ctx, db, post.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound after delete, got %v", err)
	}
}

func TestPostDAO_List(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewPostDAO()
	ctx := context.Background()

	for _, p := range []*model.Post{
		{Slug: "published", Title: "Published", Published: true},
		{Slug: "draft", Title: "Draft", Published: false},
	} {
		if err := dao.Create(ctx, db, p); err != nil {
			t.Fatalf("Create %s failed: %v", p.Slug, err)
		}
	}

	all, err := dao.List(ctx, db, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 posts, got %d", len(all))
	}

	published, err := dao.List(ctx, db, true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(published) != 1 || published[0].Slug != "published" {
		t.Errorf("Expected only the published post, got %v", published)
	}
}
