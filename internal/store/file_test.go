package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_MissingFileGivesDefaults(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "progress.json"))
	p, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NewProgress(), p)
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "progress.json")
	s := NewFileStore(path)
	ctx := context.Background()

	p := NewProgress()
	p.Score = 300
	p.MarkCompleted("hello_world")
	p.MarkCompleted("hello_world")
	require.NoError(t, s.Save(ctx, p))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, key := range []string{`"score"`, `"completed_challenges"`, `"unlocked_categories"`, `"current_level"`} {
		assert.Contains(t, string(data), key)
	}

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 300, got.Score)
	assert.Equal(t, []string{"hello_world"}, got.Completed)
	assert.Equal(t, []string{"basics"}, got.Unlocked)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestFileStore_RejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"score as string", `{"score": "lots"}`},
		{"negative score", `{"score": -1}`},
		{"level zero", `{"current_level": 0}`},
		{"completed not a list", `{"completed_challenges": "two_sum"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "progress.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o644))
			_, err := NewFileStore(path).Load(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestFileStore_NormalizesLegacyFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	legacy := `{"score": 40, "completed_challenges": ["a", "a", "b"], "unlocked_categories": ["algorithms"], "current_level": 1}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	p, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, p.Completed)
	assert.Equal(t, "basics", p.Unlocked[0])
	assert.True(t, strings.Contains(strings.Join(p.Unlocked, ","), "algorithms"))
}

func TestProgress_Helpers(t *testing.T) {
	p := NewProgress()
	assert.True(t, p.MarkCompleted("x"))
	assert.False(t, p.MarkCompleted("x"))
	assert.True(t, p.Unlock("debugging"))
	assert.False(t, p.Unlock("debugging"))

	c := p.Clone()
	c.Completed[0] = "changed"
	assert.Equal(t, "x", p.Completed[0])
}
