package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescriptionFromFilename(t *testing.T) {
	cases := map[string]string{
		"2026-03-01-002-create-users.sql":    "create users",
		"2026-03-01-003-create-food-log.sql": "create food log",
		"no-prefix.sql":                      "no prefix",
	}
	for in, want := range cases {
		require.Equal(t, want, descriptionFromFilename(in), in)
	}
}

func TestMigrationFiles_SortedAndRequired(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2026-03-02-001-b.sql", "2026-03-01-001-a.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "2026-03-01-001-a.sql", filepath.Base(files[0]))

	_, err = migrationFiles(t.TempDir())
	require.Error(t, err)
}

// TestRepoMigrations verifies the checked-in schema files are discoverable
// from the package directory.
func TestRepoMigrations(t *testing.T) {
	files, err := migrationFiles(filepath.Join("..", "..", "db"))
	require.NoError(t, err)
	require.Equal(t, "2026-03-01-001-create-migrations-table.sql", filepath.Base(files[0]))
}
