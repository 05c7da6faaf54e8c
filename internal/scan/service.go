package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"medsaver/internal/generics"
	"medsaver/internal/ocr"
	"medsaver/internal/storage"

	"go.uber.org/zap"
)

var (
	ErrNotFound     = errors.New("scan not found")
	ErrInvalidInput = errors.New("image or imageUrl is required")
)

const (
	scanPrefix   = "medicine-scans"
	maxImageSize = 10 << 20
)

// Input is either an uploaded image or the URL of one already in storage.
type Input struct {
	Image       io.Reader
	Filename    string
	ContentType string
	ImageURL    string
}

type Service struct {
	repo       Repository
	store      storage.Storage
	recognizer ocr.Recognizer
	log        *zap.Logger
}

func NewService(repo Repository, store storage.Storage, recognizer ocr.Recognizer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, store: store, recognizer: recognizer, log: log}
}

// Process stores the image, identifies the medicine, attaches generic
// suggestions and records the scan.
func (s *Service) Process(ctx context.Context, userID string, in Input) (*Result, error) {
	var (
		image    []byte
		imageURL = strings.TrimSpace(in.ImageURL)
	)

	if in.Image != nil {
		data, err := io.ReadAll(io.LimitReader(in.Image, maxImageSize+1))
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		if len(data) == 0 {
			return nil, ErrInvalidInput
		}
		if len(data) > maxImageSize {
			return nil, fmt.Errorf("%w: image exceeds %d bytes", ErrInvalidInput, maxImageSize)
		}
		image = data

		key := storage.ObjectKey(scanPrefix, userID, in.Filename)
		url, err := s.store.Upload(ctx, key, bytes.NewReader(data), in.ContentType)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		imageURL = url
	}

	if imageURL == "" {
		return nil, ErrInvalidInput
	}

	s.log.Info("processing scan", zap.String("user_id", userID), zap.String("image_url", imageURL))

	rec, err := s.recognizer.Recognize(ctx, imageURL, image)
	if err != nil {
		if errors.Is(err, ocr.ErrUntrustedURL) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("recognize: %w", err)
	}

	suggestions := generics.ForScan(rec.MedicineName)
	scan := &Scan{
		UserID:               userID,
		ImageURL:             imageURL,
		ExtractedText:        rec.ExtractedText,
		DetectedMedicineName: rec.MedicineName,
		ConfidenceScore:      rec.Confidence,
		GenericSuggestions:   suggestions,
		PriceSavings:         generics.MaxSavings(suggestions),
	}

	if err := s.repo.Create(ctx, scan); err != nil {
		return nil, fmt.Errorf("save scan: %w", err)
	}

	return &Result{
		Success:            true,
		ExtractedText:      scan.ExtractedText,
		MedicineName:       scan.DetectedMedicineName,
		ConfidenceScore:    scan.ConfidenceScore,
		GenericSuggestions: scan.GenericSuggestions,
		PriceSavings:       scan.PriceSavings,
		ScanID:             scan.ID,
		Quote:              scan.Quote(),
	}, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Scan, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get returns a scan owned by userID. Other users' scans read as missing.
func (s *Service) Get(ctx context.Context, userID, id string) (*Scan, error) {
	scan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scan.UserID != userID {
		return nil, ErrNotFound
	}
	return scan, nil
}
