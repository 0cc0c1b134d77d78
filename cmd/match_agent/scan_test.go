package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/match-intel/internal/types"
)

func TestLoadProcessed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.json")
	require.NoError(t, os.WriteFile(path, []byte(`["/jobs/~a1", "/jobs/~b2"]`), 0o644))

	processed, err := loadProcessed(path)
	require.NoError(t, err)
	assert.True(t, processed["/jobs/~a1"])
	assert.True(t, processed["/jobs/~b2"])
	assert.Len(t, processed, 2)
}

func TestLoadProcessed_MissingFileIsFirstRun(t *testing.T) {
	processed, err := loadProcessed(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, processed)
}

func TestLoadProcessed_EmptyPath(t *testing.T) {
	processed, err := loadProcessed("")
	require.NoError(t, err)
	assert.NotNil(t, processed)
}

func TestLoadProcessed_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))

	_, err := loadProcessed(path)
	assert.Error(t, err)
}

func TestSaveProcessed_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.json")

	require.NoError(t, saveProcessed(path, map[string]bool{
		"/jobs/~a1": true,
		"/jobs/~b2": true,
	}))

	loaded, err := loadProcessed(path)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
	assert.True(t, loaded["/jobs/~a1"])
}

func TestJSONFileHelpers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")

	jobs := []*types.JobRecord{{Title: "One", Link: "/jobs/~a1"}}
	require.NoError(t, writeJSONFile(path, jobs))

	var loaded []*types.JobRecord
	require.NoError(t, readJSONFile(path, &loaded))
	require.Len(t, loaded, 1)
	assert.Equal(t, "One", loaded[0].Title)
}

func TestReadJSONFile_MissingFile(t *testing.T) {
	var out any
	assert.Error(t, readJSONFile(filepath.Join(t.TempDir(), "nope.json"), &out))
}
