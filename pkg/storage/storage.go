// Package storage defines the file storage abstraction for the portfolio CMS.
// It provides a uniform interface over interchangeable backends (GCS, FTP,
// S3-compatible, local filesystem) plus the reference normalization that maps
// any historical URL or path form back to a canonical filename.
package storage

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

// Driver is the contract every storage backend implements.
// Filenames are canonical (no path separators); each driver maps them onto
// its own physical layout.
type Driver interface {
	// Upload writes data under filename, replacing any prior content.
	Upload(ctx context.Context, filename string, data []byte) error

	// Download returns the full content of filename.
	// A missing file yields an error satisfying errors.Is(err, fs.ErrNotExist).
	Download(ctx context.Context, filename string) ([]byte, error)

	// Delete removes filename. Deleting a file that does not exist is not
	// an error; it is treated as already deleted.
	Delete(ctx context.Context, filename string) error

	// Exists reports whether filename is present.
	Exists(ctx context.Context, filename string) (bool, error)

	// Type returns the backend identifier ("gcs", "ftp", "s3" or "local").
	Type() string
}

// Backend identifies which driver the facade selected.
type Backend string

const (
	BackendGCS   Backend = "gcs"
	BackendFTP   Backend = "ftp"
	BackendS3    Backend = "s3"
	BackendLocal Backend = "local"
)

// ErrNoBackend is returned when an operation runs before any backend has
// been configured.
var ErrNoBackend = errors.New("no storage backend configured")

// contentTypes maps file extensions served by the media proxy to MIME types.
// Anything else falls back to application/octet-stream.
var contentTypes = map[string]string{
	".webp": "image/webp",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".mp4":  "video/mp4",
	".webm": "video/webm",
}

// ContentTypeFor resolves a MIME type from the filename extension.
func ContentTypeFor(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// IsVideo reports whether the filename has a video extension. Video responses
// advertise byte-range support so players can seek.
func IsVideo(filename string) bool {
	return strings.HasPrefix(ContentTypeFor(filename), "video/")
}
