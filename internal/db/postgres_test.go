package db

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingMigrations_SortedSQLOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"002_reviews.sql":  {Data: []byte("SELECT 2;")},
		"001_init.sql":     {Data: []byte("SELECT 1;")},
		"README.md":        {Data: []byte("docs")},
		"nested/003_x.sql": {Data: []byte("SELECT 3;")},
		"010_inbox.sql":    {Data: []byte("SELECT 10;")},
	}

	names, err := PendingMigrations(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_reviews.sql", "010_inbox.sql"}, names)
}

func TestMigrationSource(t *testing.T) {
	embedded := fstest.MapFS{"001_init.sql": {Data: []byte("SELECT 1;")}}

	assert.Equal(t, embedded, MigrationSource("", embedded))
	assert.NotEqual(t, embedded, MigrationSource(t.TempDir(), embedded))
}
