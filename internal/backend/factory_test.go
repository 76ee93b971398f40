package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	require.NoError(t, Config{Type: MemoryBackend}.Validate())
	require.NoError(t, Config{Type: SQLiteBackend, SQLiteDBPath: "x.db"}.Validate())
	require.Error(t, Config{Type: SQLiteBackend}.Validate())
	require.Error(t, Config{Type: "sheets"}.Validate())
}

func TestCreateBackend(t *testing.T) {
	ctx := context.Background()
	f := NewFactory(nil)

	mem, err := f.CreateBackend(ctx, Config{Type: MemoryBackend})
	require.NoError(t, err)
	require.NoError(t, mem.Ping(ctx))
	require.NoError(t, mem.Close())

	path := filepath.Join(t.TempDir(), "nested", "budget.db")
	db, err := f.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: path})
	require.NoError(t, err)
	require.NoError(t, db.Ping(ctx))
	require.NoError(t, db.Close())

	_, err = f.CreateBackend(ctx, Config{Type: "bogus"})
	require.Error(t, err)
}
