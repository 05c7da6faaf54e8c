package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
)

const tesseractConfidence = 0.5

// TesseractRecognizer shells out to the tesseract CLI. URL-only scans are
// fetched only when they live under allowedBase, the public storage URL.
type TesseractRecognizer struct {
	binary      string
	allowedBase string
	client      *http.Client
	log         *zap.Logger
}

func NewTesseractRecognizer(binary, allowedBase string, log *zap.Logger) *TesseractRecognizer {
	if binary == "" {
		binary = "tesseract"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &TesseractRecognizer{
		binary:      binary,
		allowedBase: strings.TrimSpace(allowedBase),
		client: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		log: log,
	}
}

func (t *TesseractRecognizer) Recognize(ctx context.Context, imageURL string, image []byte) (*Recognition, error) {
	if image == nil {
		fetched, err := t.fetch(ctx, imageURL)
		if err != nil {
			return nil, err
		}
		image = fetched
	}

	if isPDF(image) {
		t.log.Info("ocr skipped pdf", zap.String("url", imageURL))
		return nil, ErrUnsupportedImage
	}

	tmpFile, err := os.CreateTemp("", "medicine-*.jpg")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpFile.Name())

	written, err := io.Copy(tmpFile, bytes.NewReader(image))
	_ = tmpFile.Close()
	if err != nil || written == 0 {
		return nil, fmt.Errorf("failed to write temp image: %v", err)
	}

	out, err := exec.CommandContext(ctx, t.binary, tmpFile.Name(), "stdout").Output()
	if err != nil {
		return nil, fmt.Errorf("tesseract: %w", err)
	}

	text := CleanText(string(out))
	if text == "" {
		return nil, ErrNoText
	}

	t.log.Debug("ocr done", zap.Int("bytes", int(written)), zap.Int("text_length", len(text)))

	return &Recognition{
		ExtractedText: text,
		MedicineName:  DetectMedicineName(text),
		Confidence:    tesseractConfidence,
	}, nil
}

func (t *TesseractRecognizer) fetch(ctx context.Context, imageURL string) ([]byte, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("no image to recognize")
	}
	if !underBase(imageURL, t.allowedBase) {
		t.log.Warn("ocr refused image url", zap.String("url", imageURL))
		return nil, ErrUntrustedURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 10<<20))
}

// underBase reports whether raw points into base: same scheme and host, and
// a path inside base's path. An empty base allows nothing.
func underBase(raw, base string) bool {
	if base == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || u.User != nil {
		return false
	}
	b, err := url.Parse(base)
	if err != nil || b.Host == "" {
		return false
	}
	if !strings.EqualFold(u.Scheme, b.Scheme) || !strings.EqualFold(u.Host, b.Host) {
		return false
	}

	if u.Path == "" || path.Clean(u.Path) != u.Path {
		return false
	}
	prefix := strings.TrimSuffix(b.Path, "/") + "/"
	return strings.HasPrefix(u.Path, prefix)
}
