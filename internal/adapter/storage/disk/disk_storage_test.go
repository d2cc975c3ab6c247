package disk

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-market/listing-service/internal/platform/logger"
)

func TestDiskStorageUpload(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewDiskStorage(dir, logger.NewNop())
	require.NoError(t, err)

	ref, err := storage.Upload(context.Background(), "book.jpg", []byte("jpegdata"))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(ref, "/uploads/"))
	name := strings.TrimPrefix(ref, "/uploads/")
	assert.True(t, strings.HasSuffix(name, "-book.jpg"), "name %q should keep the original file name", name)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "jpegdata", string(data))
}

func TestDiskStorageStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewDiskStorage(dir, logger.NewNop())
	require.NoError(t, err)

	ref, err := storage.Upload(context.Background(), "../../etc/passwd", []byte("x"))
	require.NoError(t, err)

	name := strings.TrimPrefix(ref, "/uploads/")
	assert.NotContains(t, name, "/")
	_, err = os.Stat(filepath.Join(dir, name))
	assert.NoError(t, err)
}

func TestDiskStorageCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	storage, err := NewDiskStorage(dir, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, dir, storage.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
