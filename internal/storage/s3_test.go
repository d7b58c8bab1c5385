package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outlaw-hq/admin-api/internal/config"
)

func testStore() *Store {
	return New(&config.Config{
		S3Bucket:          "artifacts",
		S3Region:          "us-east-1",
		S3AccessKeyID:     "test",
		S3SecretAccessKey: "test",
	})
}

func TestDownloadURLEmptyKeyStaysEmpty(t *testing.T) {
	url, err := testStore().DownloadURL(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, url)
}

func TestDownloadURLAbsoluteURLPassesThrough(t *testing.T) {
	store := testStore()

	for _, stored := range []string{
		"https://cdn.example.com/avatar.png",
		"http://legacy.example.com/cv.pdf",
	} {
		url, err := store.DownloadURL(context.Background(), stored)
		require.NoError(t, err)
		require.Equal(t, stored, url)
	}
}

func TestDownloadURLPresignsObjectKeys(t *testing.T) {
	url, err := testStore().DownloadURL(context.Background(), "users/42/cv.pdf")
	require.NoError(t, err)
	require.Contains(t, url, "artifacts")
	require.Contains(t, url, "users/42/cv.pdf")
	require.Contains(t, url, "X-Amz-Signature")
}
