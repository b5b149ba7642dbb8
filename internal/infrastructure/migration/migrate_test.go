package migration

import (
	"testing"
	"testing/fstest"

	"github.com/erpsuite/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailable_Embedded(t *testing.T) {
	names, err := Available(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "000001_init", names[0])
}

func TestAvailable_SortedAndPaired(t *testing.T) {
	fsys := fstest.MapFS{
		"000002_invoices.up.sql":   {Data: []byte("SELECT 1;")},
		"000002_invoices.down.sql": {Data: []byte("SELECT 1;")},
		"000001_init.up.sql":       {Data: []byte("SELECT 1;")},
		"000001_init.down.sql":     {Data: []byte("SELECT 1;")},
		"README.md":                {Data: []byte("notes")},
	}
	names, err := Available(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init", "000002_invoices"}, names)
}

func TestEmbeddedMigrations_HaveDownFiles(t *testing.T) {
	names, err := Available(migrations.FS)
	require.NoError(t, err)
	for _, n := range names {
		_, err := migrations.FS.Open(n + ".down.sql")
		assert.NoError(t, err, n)
	}
}
