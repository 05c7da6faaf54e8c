package ocr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockRecognizer(t *testing.T) {
	rec, err := NewMockRecognizer().Recognize(context.Background(), "https://cdn.example.com/x.jpg", nil)
	require.NoError(t, err)

	assert.Equal(t, "Paracetamol 500mg Tablets", rec.ExtractedText)
	assert.Equal(t, "Paracetamol", rec.MedicineName)
	assert.Equal(t, 0.95, rec.Confidence)
}

func TestMockRecognizer_RejectsPDF(t *testing.T) {
	_, err := NewMockRecognizer().Recognize(context.Background(), "", []byte("%PDF-1.7 ..."))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestNew(t *testing.T) {
	r, err := New("mock", "", "", nil)
	require.NoError(t, err)
	assert.IsType(t, &MockRecognizer{}, r)

	r, err = New("tesseract", "/usr/bin/tesseract", "https://cdn.example.com", nil)
	require.NoError(t, err)
	assert.IsType(t, &TesseractRecognizer{}, r)

	_, err = New("vision", "", "", nil)
	assert.Error(t, err)
}

func TestTesseractRecognizer_RejectsPDFBeforeShellingOut(t *testing.T) {
	r := NewTesseractRecognizer("/nonexistent/tesseract", "", nil)
	_, err := r.Recognize(context.Background(), "", []byte("%PDF-1.4"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestTesseractRecognizer_NeedsImageOrURL(t *testing.T) {
	r := NewTesseractRecognizer("/nonexistent/tesseract", "", nil)
	_, err := r.Recognize(context.Background(), "", nil)
	assert.Error(t, err)
}

func TestTesseractRecognizer_RefusesForeignURLs(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := NewTesseractRecognizer("/nonexistent/tesseract", "https://cdn.example.com/scans", nil)
	for _, u := range []string{
		srv.URL + "/latest/meta-data/iam",
		"http://169.254.169.254/latest/meta-data/",
		"https://cdn.example.com/other/x.jpg",
		"https://cdn.example.com/scans/../private/x.jpg",
		"https://cdn.example.com.evil.test/scans/x.jpg",
		"http://cdn.example.com/scans/x.jpg",
		"file:///etc/passwd",
	} {
		_, err := r.Recognize(context.Background(), u, nil)
		assert.ErrorIs(t, err, ErrUntrustedURL, u)
	}
	assert.Zero(t, hits.Load())

	// no base configured: nothing is fetched
	open := NewTesseractRecognizer("/nonexistent/tesseract", "", nil)
	_, err := open.Recognize(context.Background(), srv.URL+"/x.jpg", nil)
	assert.ErrorIs(t, err, ErrUntrustedURL)
	assert.Zero(t, hits.Load())
}

func TestTesseractRecognizer_FetchesUnderBase(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	r := NewTesseractRecognizer("/nonexistent/tesseract", srv.URL, nil)
	_, err := r.Recognize(context.Background(), srv.URL+"/medicine-scans/u1/a.jpg", nil)
	// the PDF body stops the pipeline before tesseract runs
	assert.ErrorIs(t, err, ErrUnsupportedImage)
	assert.Equal(t, int32(1), hits.Load())
}

func TestCleanText(t *testing.T) {
	raw := "  CROCIN \t 500   mg\r\n\n\n\n\fParacetamol� Tablets IP  "
	assert.Equal(t, "CROCIN 500 mg\n\nParacetamol Tablets IP", CleanText(raw))
}

func TestDetectMedicineName(t *testing.T) {
	cases := map[string]string{
		"CROCIN 500 mg Tablets":      "Crocin",
		"500mg Amoxicillin capsules": "Amoxicillin",
		"Rx: 10 x 10 (DOLO) 650":     "Dolo",
		"12 34":                      "",
		"ácido fólico 5mg":           "Ácido",
		"ÉL 5 ωμέγα":                 "Ωμέγα",
	}
	for in, want := range cases {
		assert.Equal(t, want, DetectMedicineName(in), in)
	}
}
