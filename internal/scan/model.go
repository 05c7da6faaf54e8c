package scan

import (
	"time"

	"medsaver/internal/generics"
)

// Scan is one processed medicine photo.
type Scan struct {
	ID                   string                 `json:"id"`
	UserID               string                 `json:"user_id"`
	ImageURL             string                 `json:"image_url"`
	ExtractedText        string                 `json:"extracted_text"`
	DetectedMedicineName string                 `json:"detected_medicine_name"`
	ConfidenceScore      float64                `json:"confidence_score"`
	GenericSuggestions   []generics.Alternative `json:"generic_suggestions"`
	PriceSavings         float64                `json:"price_savings"`
	ScanTimestamp        time.Time              `json:"scan_timestamp"`
}

// Quote is the brand/generic comparison shown for the scan.
func (s *Scan) Quote() generics.Quote {
	return generics.QuoteFor(s.GenericSuggestions, s.PriceSavings)
}

// Result is the response of POST /scans.
type Result struct {
	Success            bool                   `json:"success"`
	ExtractedText      string                 `json:"extracted_text"`
	MedicineName       string                 `json:"medicine_name"`
	ConfidenceScore    float64                `json:"confidence_score"`
	GenericSuggestions []generics.Alternative `json:"generic_suggestions"`
	PriceSavings       float64                `json:"price_savings"`
	ScanID             string                 `json:"scan_id"`
	Quote              generics.Quote         `json:"quote"`
}
