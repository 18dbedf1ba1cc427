package validator

import (
	"errors"
	"net/http"
	"strings"
)

// Default upload constraints
const (
	DefaultMaxUploadSize = 50 * 1024 * 1024 // 50MB
	DefaultMaxBatchFiles = 20
)

// DefaultAllowedMimeTypes contains the default whitelist of allowed MIME
// types for portfolio media uploads.
var DefaultAllowedMimeTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,

	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,

	"application/pdf": true,
	"text/plain":      true,
}

// UploadConfig defines constraints for file uploads.
type UploadConfig struct {
	MaxFileSize      int64
	MaxBatchFiles    int
	AllowedMimeTypes map[string]bool
}

// DefaultUploadConfig returns the default upload configuration.
func DefaultUploadConfig() *UploadConfig {
	return &UploadConfig{
		MaxFileSize:      DefaultMaxUploadSize,
		MaxBatchFiles:    DefaultMaxBatchFiles,
		AllowedMimeTypes: DefaultAllowedMimeTypes,
	}
}

// ValidateFileSize checks if the file size is within the allowed limit.
func (c *UploadConfig) ValidateFileSize(size int64) error {
	if size <= 0 {
		return errors.New("file is empty")
	}
	if size > c.MaxFileSize {
		return errors.New("file too large")
	}
	return nil
}

// ValidateBatchSize checks the number of files in a multi-upload request.
func (c *UploadConfig) ValidateBatchSize(count int) error {
	if count == 0 {
		return errors.New("no files provided")
	}
	if count > c.MaxBatchFiles {
		return errors.New("too many files")
	}
	return nil
}

// ValidateMimeType checks if the MIME type is in the allowed whitelist.
func (c *UploadConfig) ValidateMimeType(mimeType string) error {
	normalized := strings.ToLower(strings.TrimSpace(mimeType))
	if normalized == "" {
		return errors.New("missing content type")
	}
	// Handle MIME types with parameters (e.g., "text/plain; charset=utf-8")
	if idx := strings.Index(normalized, ";"); idx > 0 {
		normalized = strings.TrimSpace(normalized[:idx])
	}
	if !c.AllowedMimeTypes[normalized] {
		return errors.New("unsupported file type")
	}
	return nil
}

// DetectAndValidateMimeType detects the MIME type from file content and
// validates it against the whitelist.
func (c *UploadConfig) DetectAndValidateMimeType(data []byte, declaredType string) (string, error) {
	detectedType := http.DetectContentType(data)
	if idx := strings.Index(detectedType, ";"); idx > 0 {
		detectedType = strings.TrimSpace(detectedType[:idx])
	}

	// Content sniffing cannot tell some containers apart; trust the declared
	// type when sniffing gives up with a generic answer.
	if detectedType == "application/octet-stream" && declaredType != "" {
		if err := c.ValidateMimeType(declaredType); err == nil {
			return declaredType, nil
		}
	}

	if err := c.ValidateMimeType(detectedType); err != nil {
		return detectedType, err
	}
	return detectedType, nil
}

// Validate performs full validation on an upload.
func (c *UploadConfig) Validate(size int64, mimeType string, data []byte) error {
	if err := c.ValidateFileSize(size); err != nil {
		return err
	}
	if _, err := c.DetectAndValidateMimeType(data, mimeType); err != nil {
		return err
	}
	return nil
}
