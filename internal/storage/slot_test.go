package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/mindvault/internal/vault"
)

func openSlot(t *testing.T) *Slot {
	t.Helper()
	slot, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { slot.Close() })
	return slot
}

func TestLoadUnwrittenSlot(t *testing.T) {
	slot := openSlot(t)

	_, err := slot.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	slot := openSlot(t)

	want := []vault.Resource{
		vault.Normalize(vault.Resource{Title: "A", Type: vault.TypeVideo, Tags: []string{"x"}}),
		vault.Normalize(vault.Resource{Title: "B", UserNotes: "notes"}),
	}
	require.NoError(t, slot.Save(want))

	got, err := slot.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveOverwritesWholesale(t *testing.T) {
	slot := openSlot(t)

	require.NoError(t, slot.Save([]vault.Resource{vault.Normalize(vault.Resource{Title: "old"})}))
	require.NoError(t, slot.Save([]vault.Resource{vault.Normalize(vault.Resource{Title: "new"})}))

	got, err := slot.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Title)
}

func TestLoadMalformedSlotValue(t *testing.T) {
	slot := openSlot(t)

	_, err := slot.db.Exec(`INSERT OR REPLACE INTO slots (key, value) VALUES (?, ?)`, slot.key, "{not json")
	require.NoError(t, err)

	_, err = slot.Load()
	assert.Error(t, err, "malformed slot must surface a decode error for the seed fallback")
}

func TestLoadNormalizesMissingTags(t *testing.T) {
	slot := openSlot(t)

	_, err := slot.db.Exec(`INSERT OR REPLACE INTO slots (key, value) VALUES (?, ?)`,
		slot.key, `[{"id":"1","title":"hand edited","createdAt":1}]`)
	require.NoError(t, err)

	got, err := slot.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Tags)
}

func TestMalformedSlotFallsBackToSeedOnOpen(t *testing.T) {
	slot := openSlot(t)

	_, err := slot.db.Exec(`INSERT OR REPLACE INTO slots (key, value) VALUES (?, ?)`, slot.key, "garbage")
	require.NoError(t, err)

	store := vault.Open(slot, nil)
	assert.Equal(t, 2, store.Len(), "seed dataset replaces an unreadable snapshot")
}
