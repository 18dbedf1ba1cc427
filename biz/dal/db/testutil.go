package db

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/penlight-studio/folio/biz/dal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Reduce log noise in tests
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Project{},
		&model.Post{},
		&model.SiteContent{},
	); err != nil {
		t.Fatalf("Failed to migrate tables: %v", err)
	}

	return db
}

// CleanupTestDB closes the database connection
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close DB: %v", err)
	}
}

// CreateTestProject creates a project with default values
func CreateTestProject(t *testing.T, db *gorm.DB, slug string) *model.Project {
	t.Helper()
	dao := NewProjectDAO()
	project := &model.Project{
		Slug:      slug,
		Title:     "Test " + slug,
		Thumbnail: "1700000000-aaaa1111.jpg",
		Images:    model.StringList{"1700000001-bbbb2222.png"},
		Published: true,
	}
	if err := dao.Create(context.Background(), db, project); err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return project
}
