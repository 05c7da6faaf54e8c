package ocr

import "context"

const (
	mockExtractedText = "Paracetamol 500mg Tablets"
	mockMedicineName  = "Paracetamol"
	mockConfidence    = 0.95
)

// MockRecognizer returns a fixed identification for every image.
type MockRecognizer struct{}

func NewMockRecognizer() *MockRecognizer {
	return &MockRecognizer{}
}

func (MockRecognizer) Recognize(ctx context.Context, imageURL string, image []byte) (*Recognition, error) {
	if isPDF(image) {
		return nil, ErrUnsupportedImage
	}
	return &Recognition{
		ExtractedText: mockExtractedText,
		MedicineName:  mockMedicineName,
		Confidence:    mockConfidence,
	}, nil
}
