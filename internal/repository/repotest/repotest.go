// Package repotest opens throwaway databases for tests.
package repotest

import (
	"testing"

	"gorm.io/gorm"

	"studycompanion/internal/platform/sqlite"
	"studycompanion/internal/repository"
)

// Open returns a migrated in-memory SQLite database closed when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
