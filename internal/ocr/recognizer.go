package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	ErrUnsupportedImage = errors.New("PDF files are not supported for scanning")
	ErrNoText           = errors.New("no text recognized in image")
	ErrUntrustedURL     = errors.New("image url is outside the storage bucket")
)

// Recognition is what a scan extracts from a medicine photo.
type Recognition struct {
	ExtractedText string  `json:"extracted_text"`
	MedicineName  string  `json:"medicine_name"`
	Confidence    float64 `json:"confidence_score"`
}

// Recognizer identifies a medicine from an uploaded photo. image may be nil
// when the caller only has a URL.
type Recognizer interface {
	Recognize(ctx context.Context, imageURL string, image []byte) (*Recognition, error)
}

// New returns the recognizer for the configured engine. storageBaseURL bounds
// which image URLs tesseract may download.
func New(engine, tesseractPath, storageBaseURL string, log *zap.Logger) (Recognizer, error) {
	switch engine {
	case "", "mock":
		return NewMockRecognizer(), nil
	case "tesseract":
		return NewTesseractRecognizer(tesseractPath, storageBaseURL, log), nil
	default:
		return nil, fmt.Errorf("unknown OCR engine %q", engine)
	}
}

func isPDF(image []byte) bool {
	return bytes.HasPrefix(image, []byte("%PDF"))
}
