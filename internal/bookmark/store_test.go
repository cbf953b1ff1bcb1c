// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bookmark

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/capture/internal/contentid"
	"github.com/pdiddy/capture/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.StoreConfig{Dir: filepath.Join(t.TempDir(), ".capture")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func mustCreate(t *testing.T, s *Store, name string, lines []string, lang types.Language) types.Bookmark {
	t.Helper()
	b, err := s.Create(context.Background(), name, lines, lang)
	require.NoError(t, err)
	return b
}

var addLines = []string{
	"fn add(a: i32, b: i32) -> i32 {",
	"    a + b",
	"}",
}

// --- schema ---

func TestNewStoreCreatesIndex(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".capture")
	store, err := NewStore(types.StoreConfig{Dir: dir}, nil)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(dir, dbFile))
	assert.NoError(t, err)

	var count int
	require.NoError(t, store.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'bookmarks'`,
	).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestNewStoreReopensExistingIndex(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".capture")
	first, err := NewStore(types.StoreConfig{Dir: dir}, nil)
	require.NoError(t, err)
	mustCreate(t, first, "add", addLines, types.LanguageRust)
	require.NoError(t, first.Close())

	second, err := NewStore(types.StoreConfig{Dir: dir}, nil)
	require.NoError(t, err)
	defer second.Close()

	_, ok, err := second.Get(context.Background(), "add")
	require.NoError(t, err)
	assert.True(t, ok)
}

// --- create / get ---

func TestCreateAndGet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	created := mustCreate(t, store, "add", addLines, types.LanguageRust)
	assert.Equal(t, contentid.Of(addLines), created.ID)

	got, ok, err := store.Get(ctx, "add")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "add", got.Name)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, types.LanguageRust, got.Language)
	assert.Equal(t, addLines, got.Content)
	assert.False(t, got.CreatedAt.IsZero())

	data, err := os.ReadFile(filepath.Join(store.Dir(), created.ID))
	require.NoError(t, err)
	assert.Equal(t, strings.Join(addLines, "\n")+"\n", string(data))
}

func TestGetMissing(t *testing.T) {
	store := testStore(t)
	_, ok, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateDuplicateNameLeavesOriginal(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	original := mustCreate(t, store, "snippet", addLines, types.LanguageRust)

	_, err := store.Create(ctx, "snippet", []string{"print('other')"}, types.LanguagePython)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrAlreadyExists)

	got, ok, err := store.Get(ctx, "snippet")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, original.ID, got.ID)
	assert.Equal(t, addLines, got.Content)
	assert.Equal(t, types.LanguageRust, got.Language)

	_, err = os.Stat(store.blobPath(contentid.Of([]string{"print('other')"})))
	assert.True(t, os.IsNotExist(err), "rejected content must not be written")
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	store := testStore(t)

	tests := []struct {
		name  string
		bname string
		lines []string
	}{
		{"empty name", "", addLines},
		{"blank name", "   ", addLines},
		{"no content", "empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Create(context.Background(), tt.bname, tt.lines, types.LanguageRust)
			require.Error(t, err)
			assert.Equal(t, types.KindInvalidInput, types.KindOf(err))
		})
	}
}

func TestCreateConcurrentDuplicates(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.Create(ctx, "race", addLines, types.LanguageRust)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.Equal(t, types.KindAlreadyExists, types.KindOf(err), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)
}

// --- shared content ---

func TestIdenticalContentSharesBlob(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	a := mustCreate(t, store, "first", addLines, types.LanguageRust)
	b := mustCreate(t, store, "second", addLines, types.LanguageRust)
	assert.Equal(t, a.ID, b.ID)

	require.NoError(t, store.Delete(ctx, "first"))

	got, ok, err := store.Get(ctx, "second")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, addLines, got.Content)

	require.NoError(t, store.Delete(ctx, "second"))
	_, err = os.Stat(store.blobPath(a.ID))
	assert.True(t, os.IsNotExist(err), "blob should be removed with its last bookmark")
}

func TestSingleLineBlobDoesNotCollideWithFoldedID(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	// ["y", "x"] folds to sha256("x y"), which a single-line "x y" snippet
	// would also produce if its blob were named by the digest alone.
	mustCreate(t, store, "single", []string{"x y"}, types.LanguageUnknown)
	mustCreate(t, store, "pair", []string{"y", "x"}, types.LanguageUnknown)

	single, _, err := store.Get(ctx, "single")
	require.NoError(t, err)
	pair, _, err := store.Get(ctx, "pair")
	require.NoError(t, err)

	assert.Equal(t, "x y", single.ID)
	assert.Equal(t, []string{"x y"}, single.Content)
	assert.Equal(t, []string{"y", "x"}, pair.Content)
}

func TestCreateAndDeleteAcrossStoresKeepBlob(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".capture")
	writer, err := NewStore(types.StoreConfig{Dir: dir}, nil)
	require.NoError(t, err)
	defer writer.Close()
	deleter, err := NewStore(types.StoreConfig{Dir: dir}, nil)
	require.NoError(t, err)
	defer deleter.Close()

	ctx := context.Background()
	const rounds = 20
	for i := 0; i < rounds; i++ {
		mustCreate(t, deleter, fmt.Sprintf("old-%02d", i), addLines, types.LanguageRust)

		var wg sync.WaitGroup
		var createErr, deleteErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, createErr = writer.Create(ctx, fmt.Sprintf("new-%02d", i), addLines, types.LanguageRust)
		}()
		go func() {
			defer wg.Done()
			deleteErr = deleter.Delete(ctx, fmt.Sprintf("old-%02d", i))
		}()
		wg.Wait()
		require.NoError(t, createErr)
		require.NoError(t, deleteErr)
	}

	got, err := writer.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, got, rounds)
	for _, b := range got {
		assert.Equal(t, addLines, b.Content, b.Name)
	}
}

// --- delete ---

func TestDeleteMissing(t *testing.T) {
	store := testStore(t)
	err := store.Delete(context.Background(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteRemovesRowAndBlob(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	b := mustCreate(t, store, "add", addLines, types.LanguageRust)
	require.NoError(t, store.Delete(ctx, "add"))

	_, ok, err := store.Get(ctx, "add")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = os.Stat(store.blobPath(b.ID))
	assert.True(t, os.IsNotExist(err))
}

// --- list ---

func TestList(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	mustCreate(t, store, "http-handler", []string{"func handle() {", "}"}, types.LanguageGolang)
	mustCreate(t, store, "add", addLines, types.LanguageRust)
	mustCreate(t, store, "http-client", []string{"def client():", "    pass"}, types.LanguagePython)

	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{"all sorted by name", "", []string{"add", "http-client", "http-handler"}},
		{"glob prefix", "http-*", []string{"http-client", "http-handler"}},
		{"glob single char", "ad?", []string{"add"}},
		{"no match", "zzz*", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(ctx, tt.filter)
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, b := range got {
				names = append(names, b.Name)
				assert.NotEmpty(t, b.Content)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestListBadFilter(t *testing.T) {
	store := testStore(t)
	_, err := store.List(context.Background(), "[")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestListMissingBlobIsIOError(t *testing.T) {
	store := testStore(t)
	b := mustCreate(t, store, "add", addLines, types.LanguageRust)
	require.NoError(t, os.Remove(store.blobPath(b.ID)))

	_, err := store.List(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrIO)
	assert.Contains(t, err.Error(), b.ID)
}

func TestListBadCreatedAtIsIOError(t *testing.T) {
	store := testStore(t)
	mustCreate(t, store, "add", addLines, types.LanguageRust)
	_, err := store.db.Exec(`UPDATE bookmarks SET created_at = 'yesterday' WHERE name = 'add'`)
	require.NoError(t, err)

	_, err = store.List(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrIO)

	_, _, err = store.Get(context.Background(), "add")
	assert.ErrorIs(t, err, types.ErrIO)
}

// --- export ---

func TestExport(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	mustCreate(t, store, "add", addLines, types.LanguageRust)
	mustCreate(t, store, "other", []string{"x := 1"}, types.LanguageGolang)

	t.Run("json", func(t *testing.T) {
		var buf strings.Builder
		require.NoError(t, store.Export(ctx, &buf, FormatJSON, "add"))

		var got []types.Bookmark
		require.NoError(t, json.Unmarshal([]byte(buf.String()), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "add", got[0].Name)
		assert.Equal(t, types.LanguageRust, got[0].Language)
		assert.Equal(t, addLines, got[0].Content)
		assert.Contains(t, buf.String(), `"language": "rs"`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf strings.Builder
		require.NoError(t, store.Export(ctx, &buf, FormatYAML, ""))

		var got []types.Bookmark
		require.NoError(t, yaml.Unmarshal([]byte(buf.String()), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "other", got[1].Name)
		assert.Equal(t, types.LanguageGolang, got[1].Language)
	})
}

func TestParseExportFormat(t *testing.T) {
	for in, want := range map[string]ExportFormat{"": FormatYAML, "yaml": FormatYAML, "yml": FormatYAML, "json": FormatJSON} {
		got, err := ParseExportFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseExportFormat("xml")
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}
