package db

import (
	"context"
	"errors"
	"testing"

	"github.com/penlight-studio/folio/biz/dal/model"
	"gorm.io/gorm"
)

func TestContentDAO_Upsert(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewContentDAO()
	ctx := context.Background()

	t.Run("CreatesNewKey", func(t *testing.T) {
		content := &model.SiteContent{
			Key:   "about",
			Value: "Hi, I build things.",
			Kind:  model.ContentKindText,
		}
		if err := dao.Upsert(ctx, db, content); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}

		found, err := dao.GetByKey(ctx, db, "about")
		if err != nil {
			t.Fatalf("GetByKey failed: %v", err)
		}
		if found.Value != "Hi, I build things." {
			t.Errorf("Expected stored value, got %q", found.Value)
		}
	})

	t.Run("ReplacesExistingKey", func(t *testing.T) {
		update := &model.SiteContent{
			Key:   "about",
			Value: "Updated bio.",
			Kind:  model.ContentKindText,
		}
		if err := dao.Upsert(ctx, db, update); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}

		found, err := dao.GetByKey(ctx, db, "about")
		if err != nil {
			t.Fatalf("GetByKey failed: %v", err)
		}
		if found.Value != "Updated bio." {
			t.Errorf("Expected replaced value, got %q", found.Value)
		}

		all, err := dao.List(ctx, db)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(all) != 1 {
			t.Errorf("Upsert should not duplicate keys, got %d rows", len(all))
		}
	})

	t.Run("NilEntity", func(t *testing.T) {
		if err := dao.Upsert(ctx, db, nil); err == nil {
			t.Error("Expected error for nil entity")
		}
	})
}

func TestContentDAO_Delete(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewContentDAO()
	ctx := context.Background()

	content := &model.SiteContent{Key: "hero_image", Value: "1700000000-ffff6666.webp", Kind: model.ContentKindMedia}
	if err := dao.Upsert(ctx, db, content); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if err := dao.DeleteByKey(ctx, db, "hero_image"); err != nil {
		t.Fatalf("DeleteByKey failed: %v", err)
	}
	if _, err := dao.GetByKey(ctx, db, "hero_image"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound after delete, got %v", err)
	}

	// Unknown keys delete without error
	if err := dao.DeleteByKey(ctx, db, "never-existed"); err != nil {
		t.Errorf("Deleting unknown key should not error: %v", err)
	}
}

func TestContentDAO_ListOrdering(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewContentDAO()
	ctx := context.Background()

	for _, key := range []string{"zeta", "alpha", "mid"} {
		if err := dao.Upsert(ctx, db, &model.SiteContent{Key: key, Value: key, Kind: model.ContentKindText}); err != nil {
			t.Fatalf("Upsert %s failed: %v", key, err)
		}
	}

	all, err := dao.List(ctx, db)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(all) != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), len(all))
	}
	for i, c := range all {
		if c.Key != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], c.Key)
		}
	}
}
