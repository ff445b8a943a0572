package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Quote Drafts")
	require.NoError(t, err)

	assert.Regexp(t, `^\d{14}$`, mf.Version)
	assert.Equal(t, filepath.Join(dir, mf.Version+"_add_quote_drafts.up.sql"), mf.UpPath)

	for _, path := range []string{mf.UpPath, mf.DownPath} {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "Add Quote Drafts")
	}
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "add_quote_drafts", sanitizeName("Add Quote-Drafts"))
	assert.Equal(t, "v2_schema", sanitizeName("  v2   schema  "))
	assert.Equal(t, "abc123", sanitizeName("abc123!@#"))
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = CreateMigration(dir, "first")
	require.NoError(t, err)

	names, err = ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Contains(t, names[0], "_first")

	names, err = ListMigrations(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, names)
}
