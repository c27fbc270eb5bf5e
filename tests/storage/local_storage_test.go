package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/perfcycle/review-api/internal/config"
	"github.com/perfcycle/review-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStorage(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("upload and download round trip", func(t *testing.T) {
		content := "employee_id,overall_score\nabc,4.33\n"
		path, size, err := store.Upload(ctx, "scores.csv", "text/csv", strings.NewReader(content))
		require.NoError(t, err)
		assert.NotEmpty(t, path)
		assert.Equal(t, int64(len(content)), size)

		reader, err := store.Download(ctx, path)
		require.NoError(t, err)
		defer reader.Close()

		got, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
	})

	t.Run("uploads with the same filename do not collide", func(t *testing.T) {
		pathA, _, err := store.Upload(ctx, "report.csv", "text/csv", strings.NewReader("a"))
		require.NoError(t, err)
		pathB, _, err := store.Upload(ctx, "report.csv", "text/csv", strings.NewReader("b"))
		require.NoError(t, err)
		assert.NotEqual(t, pathA, pathB)
	})

	t.Run("download missing file fails", func(t *testing.T) {
		_, err := store.Download(ctx, "aa/bb/missing.csv")
		assert.Error(t, err)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		path, _, err := store.Upload(ctx, "temp.csv", "text/csv", strings.NewReader("x"))
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, path))
		assert.NoError(t, store.Delete(ctx, path))

		_, err = store.Download(ctx, path)
		assert.Error(t, err)
	})
}

func TestNewStorage(t *testing.T) {
	logger := zap.NewNop()

	t.Run("local mode", func(t *testing.T) {
		store, err := storage.NewStorage(&config.StorageConfig{
			Mode:          "local",
			LocalBasePath: t.TempDir(),
		}, logger)
		require.NoError(t, err)
		assert.NotNil(t, store)
	})

	t.Run("cloud mode requires a connection string", func(t *testing.T) {
		_, err := storage.NewStorage(&config.StorageConfig{Mode: "cloud"}, logger)
		assert.Error(t, err)
	})

	t.Run("unknown mode fails", func(t *testing.T) {
		_, err := storage.NewStorage(&config.StorageConfig{Mode: "tape"}, logger)
		assert.Error(t, err)
	})
}
