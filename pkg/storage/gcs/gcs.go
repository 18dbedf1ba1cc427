// Package gcs implements the Google Cloud Storage driver.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"strings"
	"sync"
	"time"

	gstorage "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// PublicHost is the host serving publicly readable GCS objects.
const PublicHost = "https://storage.googleapis.com"

// cacheControl marks uploads immutable: filenames are generated per upload
// and never reused for different content.
const cacheControl = "public, max-age=31536000"

// ErrSigningUnavailable indicates the configured credentials carry no private
// key, so signed URLs cannot be produced. Callers fall back to proxy URLs.
var ErrSigningUnavailable = errors.New("signed urls unavailable: credentials have no private key")

// Config holds GCS bucket and credential settings. Credentials resolve in
// order: key file path, inline JSON, ambient default credentials.
type Config struct {
	Bucket          string
	ProjectID       string
	KeyFile         string
	CredentialsJSON string
	PublicAccess    bool
}

// Storage is the GCS driver. The client and bucket handle are constructed
// lazily on first use and reused for the process lifetime; the handle is
// safe for concurrent use and never mutated after construction.
type Storage struct {
	cfg Config

	mu     sync.Mutex
	client *gstorage.Client
	bucket *gstorage.BucketHandle

	signWarnOnce   sync.Once
	publicWarnOnce sync.Once
}

// New creates a GCS storage driver. No client is constructed and no network
// traffic happens until the first operation.
func New(cfg Config) (*Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("gcs bucket name is required")
	}
	return &Storage{cfg: cfg}, nil
}

// Upload writes data under filename with immutable cache metadata, then
// attempts to make the object publicly readable. Buckets with uniform access
// control reject per-object ACLs; that failure is deliberately non-fatal and
// the facade degrades to signed or proxy URLs instead.
func (s *Storage) Upload(ctx context.Context, filename string, data []byte) error {
	bucket, err := s.handle(ctx)
	if err != nil {
		return err
	}

	obj := bucket.Object(filename)
	w := obj.NewWriter(ctx)
	w.CacheControl = cacheControl
	w.ContentType = contentTypeOf(filename)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs write %s: %w", filename, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs finalize %s: %w", filename, err)
	}

	if err := obj.ACL().Set(ctx, gstorage.AllUsers, gstorage.RoleReader); err != nil {
		s.publicWarnOnce.Do(func() {
			log.Printf("gcs: cannot make objects public (bucket policy?): %v", err)
		})
	}
	return nil
}

// Download returns the full object content.
func (s *Storage) Download(ctx context.Context, filename string) ([]byte, error) {
	bucket, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}

	r, err := bucket.Object(filename).NewReader(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("object %s: %w", filename, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("gcs read %s: %w", filename, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gcs read %s: %w", filename, err)
	}
	return data, nil
}

// Delete removes the object; deleting a missing object succeeds silently.
func (s *Storage) Delete(ctx context.Context, filename string) error {
	bucket, err := s.handle(ctx)
	if err != nil {
		return err
	}

	if err := bucket.Object(filename).Delete(ctx); err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("gcs delete %s: %w", filename, err)
	}
	return nil
}

// Exists reports whether the object is present.
func (s *Storage) Exists(ctx context.Context, filename string) (bool, error) {
	bucket, err := s.handle(ctx)
	if err != nil {
		return false, err
	}

	if _, err := bucket.Object(filename).Attrs(ctx); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("gcs attrs %s: %w", filename, err)
	}
	return true, nil
}

// SignedURL produces a time-limited direct URL for the object. When the
// resolved credentials cannot sign (no private key), it returns
// ErrSigningUnavailable, logging a warning only on the first occurrence so
// per-request fallbacks stay quiet.
func (s *Storage) SignedURL(ctx context.Context, filename string, expiry time.Duration) (string, error) {
	if s.cfg.KeyFile == "" && s.cfg.CredentialsJSON == "" {
		s.warnSigningUnavailable(nil)
		return "", ErrSigningUnavailable
	}

	bucket, err := s.handle(ctx)
	if err != nil {
		return "", err
	}

	url, err := bucket.SignedURL(filename, &gstorage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(expiry),
	})
	if err != nil {
		s.warnSigningUnavailable(err)
		return "", ErrSigningUnavailable
	}
	return url, nil
}

// PublicURL builds the direct public URL for the object. No network call is
// made; the caller is responsible for knowing the bucket is world-readable.
func (s *Storage) PublicURL(filename string) string {
	return fmt.Sprintf("%s/%s/%s", PublicHost, s.cfg.Bucket, filename)
}

// PublicAccess reports whether the bucket is flagged publicly readable.
func (s *Storage) PublicAccess() bool {
	return s.cfg.PublicAccess
}

// Type returns "gcs".
func (s *Storage) Type() string {
	return "gcs"
}

// handle returns the memoized bucket handle, constructing the client on
// first use.
func (s *Storage) handle(ctx context.Context) (*gstorage.BucketHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bucket != nil {
		return s.bucket, nil
	}

	var opts []option.ClientOption
	switch {
	case s.cfg.KeyFile != "":
		opts = append(opts, option.WithCredentialsFile(s.cfg.KeyFile))
	case s.cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(s.cfg.CredentialsJSON)))
	}

	client, err := gstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	s.client = client
	s.bucket = client.Bucket(s.cfg.Bucket)
	return s.bucket, nil
}

func (s *Storage) warnSigningUnavailable(cause error) {
	s.signWarnOnce.Do(func() {
		if cause != nil {
			log.Printf("gcs: signed urls unavailable, falling back to proxy urls: %v", cause)
			return
		}
		log.Printf("gcs: no signing credentials configured, falling back to proxy urls")
	})
}

func contentTypeOf(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		switch strings.ToLower(filename[i:]) {
		case ".webp":
			return "image/webp"
		case ".jpg", ".jpeg":
			return "image/jpeg"
		case ".png":
			return "image/png"
		case ".gif":
			return "image/gif"
		case ".mp4":
			return "video/mp4"
		case ".webm":
			return "video/webm"
		}
	}
	return "application/octet-stream"
}

// isNotFound checks for the GCS object/bucket not-found sentinels.
func isNotFound(err error) bool {
	if errors.Is(err, gstorage.ErrObjectNotExist) || errors.Is(err, gstorage.ErrBucketNotExist) {
		return true
	}
	if err != nil {
		msg := strings.ToLower(err.Error())
		return strings.Contains(msg, "not found") || strings.Contains(msg, "404")
	}
	return false
}
