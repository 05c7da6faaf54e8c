package medicine

import (
	"encoding/json"
	"time"

	"medsaver/internal/generics"
)

// CatalogueEntry is one row of the imported medicine catalogue.
type CatalogueEntry struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	ManufacturerName  string  `json:"manufacturer_name"`
	Price             float64 `json:"price"`
	Type              string  `json:"type"`
	PackSizeLabel     string  `json:"pack_size_label"`
	ShortComposition1 string  `json:"short_composition1"`
	ShortComposition2 string  `json:"short_composition2"`
	IsDiscontinued    bool    `json:"is_discontinued"`
}

// Search is a recorded medicine search.
type Search struct {
	ID                  string                  `json:"id"`
	UserID              string                  `json:"user_id"`
	SearchQuery         string                  `json:"search_query"`
	MedicineFound       generics.MedicineDetail `json:"medicine_found"`
	GenericAlternatives []generics.Alternative  `json:"generic_alternatives"`
	SearchTimestamp     time.Time               `json:"search_timestamp"`
}

// SearchResult is the response of POST /medicines/search.
type SearchResult struct {
	Success             bool                    `json:"success"`
	Found               bool                    `json:"found"`
	Medicine            generics.MedicineDetail `json:"medicine"`
	GenericAlternatives []generics.Alternative  `json:"generic_alternatives"`
	DatabaseResults     []CatalogueEntry        `json:"database_results"`
	SearchID            string                  `json:"search_id"`
}

type Favorite struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	MedicineName    string          `json:"medicine_name"`
	MedicineDetails json.RawMessage `json:"medicine_details,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
