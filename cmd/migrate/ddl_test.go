package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDDLStatements(t *testing.T) {
	content := `-- header comment
CREATE TABLE products (
  product_id STRING(36) NOT NULL
) PRIMARY KEY (product_id);

-- index
CREATE INDEX idx ON products(product_id);
`
	got := splitDDLStatements(content)
	require.Len(t, got, 2)
	assert.Equal(t, "CREATE TABLE products (\nproduct_id STRING(36) NOT NULL\n) PRIMARY KEY (product_id)", got[0])
	assert.Equal(t, "CREATE INDEX idx ON products(product_id)", got[1])

	assert.Empty(t, splitDDLStatements("-- nothing\n\n"))
}

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "postgres"), 0o755))
	for _, name := range []string{"002_b.sql", "001_a.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "postgres", name), []byte("SELECT 1;"), 0o600))
	}

	files, err := migrationFiles(dir, "postgres")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "001_a.sql", filepath.Base(files[0]))
	assert.Equal(t, "002_b.sql", filepath.Base(files[1]))

	files, err = migrationFiles(dir, "spanner")
	require.NoError(t, err)
	assert.Empty(t, files)
}
