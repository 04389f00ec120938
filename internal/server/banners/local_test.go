package banners

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveWritesFileAndReturnsRef(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "banner.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(ref, urlPrefix), ref)
	assert.True(t, strings.HasSuffix(ref, "_banner.png"), ref)

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(ref, urlPrefix)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalStore_SaveStripsDirectoryComponents(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "../../etc/passwd", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)

	assert.NotContains(t, ref, "..")
	assert.True(t, strings.HasSuffix(ref, "_passwd"), ref)
}

func TestNewLocalStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
