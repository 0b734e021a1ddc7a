package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

func TestRecordStore_SaveAndGet(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()

	record := domain.InstallationRecord{
		ID:            "rec-1",
		QualifiedName: "github/mcp-server",
		Mode:          domain.ModeLocal,
		Variables:     []string{"GITHUB_PERSONAL_ACCESS_TOKEN"},
		InstalledAt:   time.Now(),
	}

	require.NoError(t, store.Save(ctx, record))

	got, err := store.Get(ctx, "github/mcp-server")
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, []string{"GITHUB_PERSONAL_ACCESS_TOKEN"}, got.Variables)
}

func TestRecordStore_Get_NotFound(t *testing.T) {
	store := NewRecordStore()

	_, err := store.Get(context.Background(), "missing/connector")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordStore_Save_Replaces(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()

	first := domain.InstallationRecord{
		ID:            "rec-1",
		QualifiedName: "github/mcp-server",
		Variables:     []string{"OLD_VAR"},
	}
	second := domain.InstallationRecord{
		ID:            "rec-2",
		QualifiedName: "github/mcp-server",
		Variables:     []string{"NEW_VAR"},
	}

	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	got, err := store.Get(ctx, "github/mcp-server")
	require.NoError(t, err)
	assert.Equal(t, "rec-2", got.ID)
	assert.Equal(t, []string{"NEW_VAR"}, got.Variables)

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRecordStore_Save_EmptyName(t *testing.T) {
	store := NewRecordStore()

	err := store.Save(context.Background(), domain.InstallationRecord{ID: "rec-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordStore_Delete(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.InstallationRecord{
		ID:            "rec-1",
		QualifiedName: "github/mcp-server",
	}))
	require.NoError(t, store.Delete(ctx, "github/mcp-server"))

	_, err := store.Get(ctx, "github/mcp-server")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting a missing record is not an error.
	assert.NoError(t, store.Delete(ctx, "github/mcp-server"))
}

func TestRecordStore_List_Sorted(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()

	for _, name := range []string{"zeta/server", "alpha/server", "mid/server"} {
		require.NoError(t, store.Save(ctx, domain.InstallationRecord{ID: name, QualifiedName: name}))
	}

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "alpha/server", records[0].QualifiedName)
	assert.Equal(t, "mid/server", records[1].QualifiedName)
	assert.Equal(t, "zeta/server", records[2].QualifiedName)
}
