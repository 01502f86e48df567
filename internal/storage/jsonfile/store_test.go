package jsonfile

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

func seedNotes() ([]note, error) {
	return []note{{ID: 1, Text: "seed"}}, nil
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestStore(t *testing.T) (*Store[note], string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.json")
	return New[note]("notes", path, seedNotes, newNoopLogger()), path
}

func TestLoad_SelfHealing(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, path string)
	}{
		{
			name:    "missing file",
			prepare: func(_ *testing.T, _ string) {},
		},
		{
			name: "empty file",
			prepare: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, nil, 0o644))
			},
		},
		{
			name: "invalid json",
			prepare: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("{definitely not json"), 0o644))
			},
		},
		{
			name: "json but not an array",
			prepare: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("null"), 0o644))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, path := newTestStore(t)
			tt.prepare(t, path)

			items, repaired, err := store.Load()
			require.NoError(t, err)
			assert.True(t, repaired)
			assert.Equal(t, []note{{ID: 1, Text: "seed"}}, items)

			// после ремонта файл валиден и повторное чтение ничего не чинит
			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			var onDisk []note
			require.NoError(t, json.Unmarshal(raw, &onDisk))
			assert.Equal(t, items, onDisk)

			items, repaired, err = store.Load()
			require.NoError(t, err)
			assert.False(t, repaired)
			assert.Equal(t, []note{{ID: 1, Text: "seed"}}, items)
		})
	}
}

func TestLoad_CorruptFileSavedAside(t *testing.T) {
	store, path := newTestStore(t)
	corrupt := []byte("{definitely not json")
	require.NoError(t, os.WriteFile(path, corrupt, 0o644))

	_, repaired, err := store.Load()
	require.NoError(t, err)
	assert.True(t, repaired)

	saved, err := os.ReadFile(path + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, corrupt, saved)
}

func TestEnsure_Idempotent(t *testing.T) {
	store, path := newTestStore(t)

	require.NoError(t, store.Ensure())
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, store.Ensure())
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEnsure_ValidFileUntouched(t *testing.T) {
	store, path := newTestStore(t)
	existing := []note{{ID: 7, Text: "existing"}}
	raw, err := json.MarshalIndent(existing, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	require.NoError(t, store.Ensure())

	items, repaired, err := store.Load()
	require.NoError(t, err)
	assert.False(t, repaired)
	assert.Equal(t, existing, items)
}

func TestSaveAndLoad_Roundtrip(t *testing.T) {
	store, _ := newTestStore(t)
	items := []note{{ID: 1, Text: "one"}, {ID: 2, Text: "two"}}

	require.NoError(t, store.Save(items))

	got, repaired, err := store.Load()
	require.NoError(t, err)
	assert.False(t, repaired)
	assert.Equal(t, items, got)
}

func TestUpdate_AppliesAndPersists(t *testing.T) {
	store, _ := newTestStore(t)

	updated, err := store.Update(func(items []note) ([]note, error) {
		return append(items, note{ID: 2, Text: "added"}), nil
	})
	require.NoError(t, err)
	assert.Len(t, updated, 2)

	got, _, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdate_FnErrorLeavesFileUntouched(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Ensure())
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	wantErr := errors.New("domain error")
	_, err = store.Update(func(_ []note) ([]note, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
