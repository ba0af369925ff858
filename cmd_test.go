package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/healthdesk/tests/helpers"
)

func TestSeedStoreDefaults(t *testing.T) {
	ctx := context.Background()
	db := helpers.NewTestSQLiteStore(t)

	n, err := seedStore(ctx, db, "")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	// A populated store is left alone.
	n, err = seedStore(ctx, db, "")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeedStoreFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `services:
  - name: Camp Clinic
    location: Sector 4
    contact: "555-0101"
    latitude: 36.19
    longitude: 44.01
  - name: Helpline
    location: Remote
    contact: "1919"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	ctx := context.Background()
	db := helpers.NewTestSQLiteStore(t)
	n, err := seedStore(ctx, db, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := db.GetService(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Helpline", got.Name)
	assert.Nil(t, got.Latitude)
}

func TestSeedStoreMissingFile(t *testing.T) {
	db := helpers.NewTestSQLiteStore(t)
	_, err := seedStore(context.Background(), db, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
