package impex_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/mindvault/internal/storage"
	"github.com/user/mindvault/internal/vault"
	"github.com/user/mindvault/internal/vault/impex"
)

func TestExportEmptyVault(t *testing.T) {
	_, err := impex.Export(nil)
	assert.ErrorIs(t, err, impex.ErrEmptyVault)
}

func TestExportIsIndented(t *testing.T) {
	data, err := impex.Export(vault.Seed())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ")
	assert.True(t, json.Valid(data))
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "mindvault-backup-2026-08-29.json", impex.Filename(now))
}

func TestImportRejectsNonArray(t *testing.T) {
	_, err := impex.Import([]byte(`{"notAList": true}`))

	var formatErr *impex.FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestImportRejectsInvalidJSON(t *testing.T) {
	_, err := impex.Import([]byte(`{{{not json`))

	var parseErr *impex.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestImportNormalizesPartialElement(t *testing.T) {
	before := time.Now().UnixMilli()
	got, err := impex.Import([]byte(`[{"title":"X"}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)

	r := got[0]
	assert.Equal(t, "X", r.Title)
	assert.Equal(t, vault.TypeArticle, r.Type)
	assert.Equal(t, []string{}, r.Tags)
	assert.NotEmpty(t, r.ID)
	assert.GreaterOrEqual(t, r.CreatedAt, before, "createdAt should be approximately now")
}

func TestImportPreservesWellTypedIdentity(t *testing.T) {
	got, err := impex.Import([]byte(`[{"id":"abc","createdAt":12345,"title":"kept"}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "abc", got[0].ID)
	assert.Equal(t, int64(12345), got[0].CreatedAt)
}

func TestImportCoercesMistypedFields(t *testing.T) {
	payload := `[{"id": 7, "title": "T", "createdAt": "yesterday", "tags": "not-a-list", "type": "PODCAST"}]`
	got, err := impex.Import([]byte(payload))
	require.NoError(t, err)
	require.Len(t, got, 1)

	r := got[0]
	assert.NotEqual(t, "7", r.ID, "mistyped id is regenerated")
	assert.NotEmpty(t, r.ID)
	assert.NotZero(t, r.CreatedAt)
	assert.Equal(t, []string{}, r.Tags)
	assert.Equal(t, vault.TypeArticle, r.Type)
}

func TestRoundTripThroughStore(t *testing.T) {
	mem := &storage.Memory{}
	mem.Preload(nil)
	source := vault.Open(mem, nil)
	source.Add(vault.Resource{Title: "A", Type: vault.TypeVideo, Tags: []string{"x", "y"}, UserNotes: "n"})
	source.Add(vault.Resource{Title: "B", Platform: "X", Summary: "s"})

	data, err := impex.Export(source.List())
	require.NoError(t, err)

	imported, err := impex.Import(data)
	require.NoError(t, err)

	freshMem := &storage.Memory{}
	freshMem.Preload(nil)
	fresh := vault.Open(freshMem, nil)
	fresh.ReplaceAll(imported)

	assert.Equal(t, source.List(), fresh.List(), "export then import must be field-wise identical")
}
