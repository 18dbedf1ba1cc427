package storage

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestBackendSelection(t *testing.T) {
	gcsBundle := GCSConfig{Bucket: "folio-media", ProjectID: "folio-prod"}
	ftpBundle := FTPConfig{Host: "ftp.example.com", User: "folio", Password: "secret"}
	s3Bundle := S3Config{Bucket: "folio-media", AccessKey: "AKIA", SecretKey: "secret"}

	cases := []struct {
		name string
		cfg  Config
		want Backend
	}{
		{"NoneConfigured", Config{}, BackendLocal},
		{"FTPOnly", Config{FTP: ftpBundle}, BackendFTP},
		{"S3Only", Config{S3: s3Bundle}, BackendS3},
		{"GCSOnly", Config{GCS: gcsBundle}, BackendGCS},
		{"GCSBeatsFTP", Config{GCS: gcsBundle, FTP: ftpBundle}, BackendGCS},
		{"FTPBeatsS3", Config{FTP: ftpBundle, S3: s3Bundle}, BackendFTP},
		{"AllConfigured", Config{GCS: gcsBundle, FTP: ftpBundle, S3: s3Bundle}, BackendGCS},
		{"StaleUploadsDirIgnored", Config{UploadsDir: "anywhere", FTP: ftpBundle}, BackendFTP},
		{"PartialGCSFallsThrough", Config{GCS: GCSConfig{Bucket: "only-bucket"}, FTP: ftpBundle}, BackendFTP},
		{"PartialFTPFallsThrough", Config{FTP: FTPConfig{Host: "ftp.example.com"}}, BackendLocal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.want == BackendLocal {
				tc.cfg.UploadsDir = t.TempDir()
			}
			f, err := New(tc.cfg)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if got := f.ActiveBackend(); got != tc.want {
				t.Errorf("ActiveBackend() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestFacadeLocalRoundTrip(t *testing.T) {
	f, err := New(Config{UploadsDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()
	data := []byte("portfolio thumbnail")

	if err := f.Upload(ctx, "1700000000-abcd1234.webp", data); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	// Every historical reference form resolves to the same file.
	refs := []string{
		"1700000000-abcd1234.webp",
		"/uploads/1700000000-abcd1234.webp",
		"/api/images/1700000000-abcd1234.webp",
		"https://storage.googleapis.com/bucket/1700000000-abcd1234.webp",
	}
	for _, ref := range refs {
		got, err := f.Download(ctx, ref)
		if err != nil {
			t.Fatalf("Download(%q) failed: %v", ref, err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("Download(%q) returned wrong content", ref)
		}
		exists, err := f.Exists(ctx, ref)
		if err != nil || !exists {
			t.Errorf("Exists(%q) = %v, %v; want true", ref, exists, err)
		}
	}

	if err := f.Delete(ctx, "/api/images/1700000000-abcd1234.webp"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	exists, err := f.Exists(ctx, "1700000000-abcd1234.webp")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("Expected file gone after delete via proxy reference")
	}
}

func TestFacadeNoBackend(t *testing.T) {
	var f *Facade
	ctx := context.Background()

	if err := f.Upload(ctx, "x", nil); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Upload on nil facade: got %v, want ErrNoBackend", err)
	}
	if _, err := f.Download(ctx, "x"); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Download on nil facade: got %v, want ErrNoBackend", err)
	}
	if err := f.Delete(ctx, "x"); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Delete on nil facade: got %v, want ErrNoBackend", err)
	}
	if _, err := f.Exists(ctx, "x"); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Exists on nil facade: got %v, want ErrNoBackend", err)
	}
}

func TestURLFor(t *testing.T) {
	ctx := context.Background()

	t.Run("LocalStaticPath", func(t *testing.T) {
		f, err := New(Config{UploadsDir: t.TempDir()})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		got := f.URLFor(ctx, "photo.webp")
		if got != "/uploads/photo.webp" {
			t.Errorf("URLFor = %q, want /uploads/photo.webp", got)
		}
	})

	t.Run("FTPAlwaysProxies", func(t *testing.T) {
		f, err := New(Config{FTP: FTPConfig{Host: "ftp.example.com", User: "u", Password: "p"}})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		got := f.URLFor(ctx, "/uploads/clip.mp4")
		if got != "/api/images/clip.mp4" {
			t.Errorf("URLFor = %q, want /api/images/clip.mp4", got)
		}
	})

	t.Run("GCSPublicDirect", func(t *testing.T) {
		f, err := New(Config{GCS: GCSConfig{Bucket: "folio-media", ProjectID: "p", PublicAccess: true}})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		got := f.URLFor(ctx, "photo.webp")
		want := "https://storage.googleapis.com/folio-media/photo.webp"
		if got != want {
			t.Errorf("URLFor = %q, want %q", got, want)
		}
	})

	t.Run("GCSSigningUnavailableFallsBackToProxy", func(t *testing.T) {
		// No key file and no credentials JSON: signing cannot work, the
		// facade must degrade to the streaming proxy without erroring.
		f, err := New(Config{GCS: GCSConfig{Bucket: "folio-media", ProjectID: "p"}})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		got := f.URLFor(ctx, "photo.webp")
		if got != "/api/images/photo.webp" {
			t.Errorf("URLFor = %q, want proxy fallback /api/images/photo.webp", got)
		}
	})

	t.Run("EmbedPassthrough", func(t *testing.T) {
		f, err := New(Config{UploadsDir: t.TempDir()})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		ref := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
		if got := f.URLFor(ctx, ref); got != ref {
			t.Errorf("URLFor embed = %q, want unchanged", got)
		}
	})
}

func TestUploadNormalizesFilename(t *testing.T) {
	dir := t.TempDir()
	f, err := New(Config{UploadsDir: dir})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	if err := f.Upload(ctx, "/uploads/nested.webp", []byte("x")); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	got, err := f.Download(ctx, "nested.webp")
	if err != nil {
		t.Fatalf("Download by canonical name failed: %v", err)
	}
	if string(got) != "x" {
		t.Errorf("Downloaded %q, want %q", got, "x")
	}
}
