package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/penlight-studio/folio/biz/dal/model"
	"github.com/penlight-studio/folio/biz/service"
	"github.com/penlight-studio/folio/pkg/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// pngHeader sniffs as image/png, keeping upload validation happy.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newTestService(t *testing.T) (*service.Service, *storage.Facade) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Project{}, &model.Post{}, &model.SiteContent{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	store, err := storage.New(storage.Config{UploadsDir: t.TempDir()})
	if err != nil {
		t.Fatalf("init storage: %v", err)
	}
	return service.NewService(db, store, nil), store
}

func uploadTestFile(t *testing.T, svc *service.Service, name string) string {
	t.Helper()
	result, err := svc.UploadFile(context.Background(), &service.FileUploadInput{
		FileName:    name,
		ContentType: "image/png",
		Data:        pngHeader,
	})
	if err != nil {
		t.Fatalf("upload %s: %v", name, err)
	}
	return result.FileName
}

func TestGenerateFilename(t *testing.T) {
	pattern := regexp.MustCompile(`^\d+-[0-9a-f]{8}\.webp$`)

	name := service.GenerateFilename("My Photo.WEBP")
	if !pattern.MatchString(name) {
		t.Errorf("GenerateFilename = %q, want {unix-timestamp}-{suffix}.webp", name)
	}

	other := service.GenerateFilename("photo.webp")
	if name == other {
		t.Error("Expected distinct filenames for consecutive calls")
	}

	if ext := service.GenerateFilename("noextension"); strings.Contains(ext, ".") {
		t.Errorf("Expected no extension, got %q", ext)
	}
}

func TestUploadFile(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		result, err := svc.UploadFile(ctx, &service.FileUploadInput{
			FileName:    "portrait.PNG",
			ContentType: "image/png",
			Data:        pngHeader,
		})
		if err != nil {
			t.Fatalf("UploadFile failed: %v", err)
		}
		if !strings.HasSuffix(result.FileName, ".png") {
			t.Errorf("Expected lowered .png extension, got %s", result.FileName)
		}
		if result.URL != "/uploads/"+result.FileName {
			t.Errorf("Expected local URL, got %s", result.URL)
		}

		exists, err := store.Exists(ctx, result.FileName)
		if err != nil || !exists {
			t.Errorf("Uploaded file not found in backend: %v %v", exists, err)
		}
	})

	t.Run("EmptyPayload", func(t *testing.T) {
		if _, err := svc.UploadFile(ctx, &service.FileUploadInput{FileName: "x.png"}); err == nil {
			t.Error("Expected error for empty payload")
		}
		if _, err := svc.UploadFile(ctx, nil); err == nil {
			t.Error("Expected error for nil input")
		}
	})

	t.Run("DisallowedType", func(t *testing.T) {
		_, err := svc.UploadFile(ctx, &service.FileUploadInput{
			FileName:    "page.html",
			ContentType: "text/html",
			Data:        []byte("<html><body>nope</body></html>"),
		})
		if err == nil {
			t.Error("Expected error for disallowed content type")
		}
	})
}

func TestUploadFiles(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	t.Run("Batch", func(t *testing.T) {
		inputs := []*service.FileUploadInput{
			{FileName: "a.png", ContentType: "image/png", Data: pngHeader},
			{FileName: "b.png", ContentType: "image/png", Data: pngHeader},
		}
		results, err := svc.UploadFiles(ctx, inputs)
		if err != nil {
			t.Fatalf("UploadFiles failed: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("Expected 2 results, got %d", len(results))
		}
		if results[0].FileName == results[1].FileName {
			t.Error("Expected unique filenames within a batch")
		}
	})

	t.Run("EmptyBatch", func(t *testing.T) {
		if _, err := svc.UploadFiles(ctx, nil); err == nil {
			t.Error("Expected error for empty batch")
		}
	})
}

func TestDeleteFileIdempotent(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	name := uploadTestFile(t, svc, "victim.png")
	if err := svc.DeleteFile(ctx, "/api/images/"+name); err != nil {
		t.Fatalf("DeleteFile failed: %v", err)
	}
	exists, err := store.Exists(ctx, name)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("Expected file gone after delete")
	}
	if err := svc.DeleteFile(ctx, name); err != nil {
		t.Errorf("Second delete should succeed: %v", err)
	}
}

func TestProjectLifecycle(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	thumb := uploadTestFile(t, svc, "thumb.png")
	gallery := uploadTestFile(t, svc, "gallery.png")

	view, err := svc.CreateProject(ctx, &model.Project{
		Slug:      "case-study",
		Title:     "Case Study",
		Thumbnail: "/api/images/" + thumb,
		Images:    model.StringList{"https://storage.googleapis.com/bucket/" + gallery},
		Published: true,
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	// References are stored canonically regardless of submitted form.
	if view.Thumbnail != thumb {
		t.Errorf("Thumbnail stored as %q, want canonical %q", view.Thumbnail, thumb)
	}
	if len(view.Images) != 1 || view.Images[0] != gallery {
		t.Errorf("Images stored as %v, want canonical %q", view.Images, gallery)
	}
	if view.ThumbnailURL != "/uploads/"+thumb {
		t.Errorf("ThumbnailURL = %q, want derived local URL", view.ThumbnailURL)
	}

	t.Run("DuplicateSlug", func(t *testing.T) {
		_, err := svc.CreateProject(ctx, &model.Project{Slug: "case-study", Title: "Again"})
		if !errors.Is(err, service.ErrSlugExists) {
			t.Errorf("Expected ErrSlugExists, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		updated, err := svc.UpdateProject(ctx, &model.Project{
			ID:        view.ID,
			Title:     "Case Study v2",
			Thumbnail: "/uploads/" + thumb,
		})
		if err != nil {
			t.Fatalf("UpdateProject failed: %v", err)
		}
		if updated.Title != "Case Study v2" {
			t.Errorf("Expected updated title, got %s", updated.Title)
		}
		if updated.Thumbnail != thumb {
			t.Errorf("Thumbnail re-normalized to %q, want %q", updated.Thumbnail, thumb)
		}
	})

	t.Run("ListPublishedOnly", func(t *testing.T) {
		if _, err := svc.CreateProject(ctx, &model.Project{Slug: "draft", Title: "Draft"}); err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}
		published, err := svc.ListProjects(ctx, true)
		if err != nil {
			t.Fatalf("ListProjects failed: %v", err)
		}
		if len(published) != 1 {
			t.Errorf("Expected 1 published project, got %d", len(published))
		}
		all, err := svc.ListProjects(ctx, false)
		if err != nil {
			t.Fatalf("ListProjects failed: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("Expected 2 projects total, got %d", len(all))
		}
	})

	t.Run("DeleteCascadesToFiles", func(t *testing.T) {
		if err := svc.DeleteProject(ctx, view.ID); err != nil {
			t.Fatalf("DeleteProject failed: %v", err)
		}
		if _, err := svc.GetProject(ctx, view.ID); !errors.Is(err, service.ErrProjectNotFound) {
			t.Errorf("Expected ErrProjectNotFound, got %v", err)
		}
		for _, name := range []string{thumb, gallery} {
			exists, err := store.Exists(ctx, name)
			if err != nil {
				t.Fatalf("Exists failed: %v", err)
			}
			if exists {
				t.Errorf("Expected %s removed with its project", name)
			}
		}
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		if err := svc.DeleteProject(ctx, 99999); !errors.Is(err, service.ErrProjectNotFound) {
			t.Errorf("Expected ErrProjectNotFound, got %v", err)
		}
	})
}

func TestPostLifecycle(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	img := uploadTestFile(t, svc, "inline.png")
	embed := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

	blocks, _ := json.Marshal([]model.Block{
		{Type: "text", Content: "intro"},
		{Type: "image", Content: "/api/images/" + img},
		{Type: "embed", Content: embed},
	})

	view, err := svc.CreatePost(ctx, &model.Post{
		Slug:      "launch-notes",
		Title:     "Launch Notes",
		Blocks:    string(blocks),
		Published: true,
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	var stored []model.Block
	if err := json.Unmarshal([]byte(view.Blocks), &stored); err != nil {
		t.Fatalf("stored blocks unparsable: %v", err)
	}
	if stored[1].Content != img {
		t.Errorf("Image block stored as %q, want canonical %q", stored[1].Content, img)
	}
	if stored[2].Content != embed {
		t.Errorf("Embed block rewritten to %q, want untouched", stored[2].Content)
	}

	t.Run("ViewDerivesURLs", func(t *testing.T) {
		got, err := svc.GetPostBySlug(ctx, "launch-notes")
		if err != nil {
			t.Fatalf("GetPostBySlug failed: %v", err)
		}
		if len(got.BlockViews) != 3 {
			t.Fatalf("Expected 3 block views, got %d", len(got.BlockViews))
		}
		if got.BlockViews[1].Content != "/uploads/"+img {
			t.Errorf("Image block view = %q, want derived URL", got.BlockViews[1].Content)
		}
		if got.BlockViews[2].Content != embed {
			t.Errorf("Embed block view = %q, want original link", got.BlockViews[2].Content)
		}
	})

	t.Run("DeleteCascadesToFiles", func(t *testing.T) {
		if err := svc.DeletePost(ctx, view.ID); err != nil {
			t.Fatalf("DeletePost failed: %v", err)
		}
		exists, err := store.Exists(ctx, img)
		if err != nil {
			t.Fatalf("Exists failed: %v", err)
		}
		if exists {
			t.Errorf("Expected %s removed with its post", img)
		}
		if _, err := svc.GetPost(ctx, view.ID); !errors.Is(err, service.ErrPostNotFound) {
			t.Errorf("Expected ErrPostNotFound, got %v", err)
		}
	})
}

func TestContentLifecycle(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	t.Run("TextDefaultsKind", func(t *testing.T) {
		view, err := svc.SetContent(ctx, &model.SiteContent{Key: "about", Value: "Hello."})
		if err != nil {
			t.Fatalf("SetContent failed: %v", err)
		}
		if view.Kind != model.ContentKindText {
			t.Errorf("Expected text kind default, got %s", view.Kind)
		}
		if view.URL != "" {
			t.Errorf("Text content should not derive a URL, got %q", view.URL)
		}
	})

	t.Run("MediaNormalizesAndDerivesURL", func(t *testing.T) {
		hero := uploadTestFile(t, svc, "hero.png")
		view, err := svc.SetContent(ctx, &model.SiteContent{
			Key:   "hero_image",
			Value: "https://storage.googleapis.com/bucket/" + hero,
			Kind:  model.ContentKindMedia,
		})
		if err != nil {
			t.Fatalf("SetContent failed: %v", err)
		}
		if view.Value != hero {
			t.Errorf("Media value stored as %q, want canonical %q", view.Value, hero)
		}
		if view.URL != "/uploads/"+hero {
			t.Errorf("URL = %q, want derived local URL", view.URL)
		}

		if err := svc.DeleteContent(ctx, "hero_image"); err != nil {
			t.Fatalf("DeleteContent failed: %v", err)
		}
		exists, err := store.Exists(ctx, hero)
		if err != nil {
			t.Fatalf("Exists failed: %v", err)
		}
		if exists {
			t.Errorf("Expected %s removed with its content entry", hero)
		}
	})

	t.Run("DeleteMissingKeySucceeds", func(t *testing.T) {
		if err := svc.DeleteContent(ctx, "never-there"); err != nil {
			t.Errorf("Expected idempotent delete, got %v", err)
		}
	})

	t.Run("MissingKey", func(t *testing.T) {
		if _, err := svc.GetContent(ctx, "nope"); !errors.Is(err, service.ErrContentNotFound) {
			t.Errorf("Expected ErrContentNotFound, got %v", err)
		}
	})
}
