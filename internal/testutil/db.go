// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/huddle-dev/huddle/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated SQLite database that lives in t.TempDir().
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.ConnectSQLite(filepath.Join(t.TempDir(), "huddle.db"))
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, db.MigrateDatabase(gdb), "failed to migrate test database")

	t.Cleanup(func() {
		if err := db.Close(gdb); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	return gdb
}
