package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget/internal/config"
	"budget/internal/storage"
)

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", DataFile: "a.json", SQLiteDBPath: "b.db"})
	require.NoError(t, err)
	assert.Equal(t, SQLiteBackend, cfg.Type)
	assert.Equal(t, "a.json", cfg.DataFile)
	assert.Equal(t, "b.db", cfg.SQLiteDBPath)

	_, err = FromAppConfig(&config.Config{DataBackend: "sheets"})
	assert.Error(t, err)

	_, err = FromAppConfig(nil)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Type: FileBackend, DataFile: "x.json"}.Validate())
	assert.Error(t, Config{Type: FileBackend}.Validate())
	assert.Error(t, Config{Type: SQLiteBackend}.Validate())
	assert.Error(t, Config{Type: "memory"}.Validate())
	assert.Len(t, GetBackendTypes(), 2)
}

func TestCreateBackend_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	res, err := NewFactory(nil).CreateBackend(Config{Type: FileBackend, DataFile: path})
	require.NoError(t, err)
	assert.Nil(t, res.Cleanup)

	fs, ok := res.Store.(*storage.FileStore)
	require.True(t, ok)
	assert.Equal(t, path, fs.Path())
}

func TestCreateBackend_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.db")

	res, err := NewFactory(nil).CreateBackend(Config{Type: SQLiteBackend, SQLiteDBPath: path})
	require.NoError(t, err)
	require.NotNil(t, res.Cleanup)
	defer res.Cleanup()

	txs, err := res.Store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestCreateBackend_Invalid(t *testing.T) {
	_, err := NewFactory(nil).CreateBackend(Config{Type: "sheets"})
	assert.Error(t, err)
}
