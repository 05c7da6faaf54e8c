package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("medicine-scans", "user-1", "Photo.PNG")
	assert.True(t, strings.HasPrefix(key, "medicine-scans/user-1/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	noExt := ObjectKey("medicine-scans", "user-1", "blob")
	assert.True(t, strings.HasSuffix(noExt, ".jpg"))

	assert.NotEqual(t, key, ObjectKey("medicine-scans", "user-1", "Photo.PNG"))
}

func TestMemoryStore_Upload(t *testing.T) {
	store := NewMemoryStore("medicine-scans")

	url, err := store.Upload(context.Background(), "a/b.jpg", strings.NewReader("img"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "memory://medicine-scans/a/b.jpg", url)

	obj, ok := store.Get("a/b.jpg")
	require.True(t, ok)
	assert.Equal(t, []byte("img"), obj.Data)
	assert.Equal(t, "image/jpeg", obj.ContentType)
	assert.Equal(t, 1, store.Len())
}

func TestR2Client_PublicURL(t *testing.T) {
	client, err := NewR2Client(context.Background(), R2Options{
		Endpoint:      "https://account.r2.cloudflarestorage.com",
		AccessKey:     "key",
		SecretKey:     "secret",
		Bucket:        "medicine-scans",
		PublicBaseURL: "https://cdn.example.com/",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/medicine-scans/u/x.jpg", client.PublicURL("medicine-scans/u/x.jpg"))
}

func TestValidateImageName(t *testing.T) {
	for _, ok := range []string{"me.jpg", "ME.PNG", "shot.heic", "blob"} {
		assert.NoError(t, ValidateImageName(ok), ok)
	}
	for _, bad := range []string{"cv.pdf", "notes.txt", "run.exe"} {
		assert.ErrorIs(t, ValidateImageName(bad), ErrUnsupportedType, bad)
	}
}
