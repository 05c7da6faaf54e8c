package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage uploads objects and returns the URL they are served from.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// ObjectKey builds "<prefix>/<ownerID>/<uuid><ext>". Filenames without an
// extension are stored as .jpg, which is what camera captures produce.
func ObjectKey(prefix, ownerID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || ext == "." {
		ext = ".jpg"
	}
	return fmt.Sprintf("%s/%s/%s%s", prefix, ownerID, uuid.New().String(), ext)
}
