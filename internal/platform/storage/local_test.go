package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalImageStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalImageStore(dir, "/uploads/")
	require.NoError(t, err)

	ref, err := store.Save("photo.PNG", strings.NewReader("image bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "/uploads/"), "public prefix applied")
	assert.True(t, strings.HasSuffix(ref, ".png"), "extension kept, lowercased")

	content, err := os.ReadFile(filepath.Join(dir, filepath.Base(ref)))
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(content))
}

func TestLocalImageStore_UniqueNames(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	a, err := store.Save("same.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := store.Save("same.jpg", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
