package repo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/CalebBennett-Harper/locus/internal/domain"
)

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	if _, err := OpenSQLite(filepath.Join(t.TempDir(), "no", "such", "dir", "app.db")); err == nil {
		t.Fatalf("expected error for missing parent directory")
	}
}

func TestOpenSQLite_AndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	// All tables usable after migration.
	if _, err := CreateSignup(context.Background(), db, testSignup("mig@x.io")); err != nil {
		t.Fatalf("insert after migrate: %v", err)
	}
	var n int64
	if err := db.Model(&domain.Session{}).Count(&n).Error; err != nil {
		t.Fatalf("sessions table missing: %v", err)
	}
}
