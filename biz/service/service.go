package service

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/penlight-studio/folio/pkg/storage"
	"github.com/penlight-studio/folio/pkg/validator"

	"gorm.io/gorm"
)

// Service orchestrates CMS operations on top of Logic and the storage facade.
type Service struct {
	logic   *Logic
	store   *storage.Facade
	uploads *validator.UploadConfig
}

func NewService(db *gorm.DB, store *storage.Facade, uploads *validator.UploadConfig) *Service {
	if uploads == nil {
		uploads = validator.DefaultUploadConfig()
	}
	return &Service{
		logic:   NewLogic(db),
		store:   store,
		uploads: uploads,
	}
}

// Store exposes the storage facade for handlers that stream file content.
func (s *Service) Store() *storage.Facade {
	return s.store
}

// GenerateFilename builds a collision-resistant canonical filename for an
// upload, keeping the original extension: {unix-timestamp}-{suffix}.{ext}.
func GenerateFilename(originalName string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d-%s%s", time.Now().Unix(), suffix, ext)
}
