package storage

import (
	"errors"
	"path/filepath"
	"strings"
)

var ErrUnsupportedType = errors.New("file type not allowed")

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".heic": true,
	".gif":  true,
}

// ValidateImageName accepts common photo extensions. A name without an
// extension is accepted and stored as .jpg.
func ValidateImageName(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || ext == "." {
		return nil
	}
	if !allowedImageExt[ext] {
		return ErrUnsupportedType
	}
	return nil
}
