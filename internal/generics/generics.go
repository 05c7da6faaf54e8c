// Package generics supplies the generic-alternative suggestions shown after a
// scan or search. The catalogue is fixed mock data; no price or matching
// engine sits behind it.
package generics

import "fmt"

// Alternative is a lower-cost medicine with the same active ingredient.
type Alternative struct {
	Name         string  `json:"name"`
	Manufacturer string  `json:"manufacturer"`
	Price        float64 `json:"price"`
	Savings      float64 `json:"savings"`
	Type         string  `json:"type,omitempty"`
	Availability string  `json:"availability,omitempty"`
}

// MedicineDetail describes the branded product a search resolved to.
type MedicineDetail struct {
	Name              string   `json:"name"`
	Manufacturer      string   `json:"manufacturer"`
	Price             float64  `json:"price"`
	Type              string   `json:"type"`
	PackSize          string   `json:"pack_size"`
	Composition       string   `json:"composition"`
	Dosage            string   `json:"dosage"`
	SideEffects       []string `json:"side_effects"`
	Uses              []string `json:"uses"`
	Contraindications []string `json:"contraindications"`
}

// ForScan returns the suggestions attached to a scan. The detected name does
// not change the list.
func ForScan(medicineName string) []Alternative {
	return []Alternative{
		{Name: "Generic Paracetamol", Manufacturer: "Generic Pharma", Price: 25.00, Savings: 15.00},
		{Name: "Acetaminophen", Manufacturer: "Health Plus", Price: 22.00, Savings: 18.00},
	}
}

// ForSearch returns the alternatives listed for a search query.
func ForSearch(query string) []Alternative {
	return []Alternative{
		{
			Name:         fmt.Sprintf("Generic %s", query),
			Manufacturer: "Generic Pharma",
			Price:        25.00,
			Savings:      15.00,
			Type:         "Tablet",
			Availability: "Available",
		},
		{
			Name:         fmt.Sprintf("Alternative %s", query),
			Manufacturer: "Health Plus",
			Price:        22.00,
			Savings:      18.00,
			Type:         "Tablet",
			Availability: "Available",
		},
	}
}

// MockBrand is the product record returned for any search query.
func MockBrand(query string) MedicineDetail {
	return MedicineDetail{
		Name:              query,
		Manufacturer:      "Example Pharma",
		Price:             40.00,
		Type:              "Tablet",
		PackSize:          "10 tablets",
		Composition:       "Active ingredient details",
		Dosage:            "As directed by physician",
		SideEffects:       []string{"Nausea", "Dizziness", "Headache"},
		Uses:              []string{"Pain relief", "Fever reduction"},
		Contraindications: []string{"Pregnancy", "Liver disease"},
	}
}

// MaxSavings is the best saving among alts, or 0 for none.
func MaxSavings(alts []Alternative) float64 {
	var best float64
	for _, a := range alts {
		if a.Savings > best {
			best = a.Savings
		}
	}
	return best
}

// Quote is the brand/generic price pair shown on a scan result card.
type Quote struct {
	Generic      string  `json:"generic"`
	Manufacturer string  `json:"manufacturer"`
	BrandPrice   float64 `json:"brand_price"`
	GenericPrice float64 `json:"generic_price"`
	Savings      float64 `json:"savings"`
}

// QuoteFor builds the card from the first suggestion: the brand price is the
// generic price plus the recorded savings.
func QuoteFor(alts []Alternative, savings float64) Quote {
	if len(alts) == 0 {
		return Quote{Generic: "Generic Alternative", Manufacturer: "Various", Savings: savings}
	}
	first := alts[0]
	return Quote{
		Generic:      first.Name,
		Manufacturer: first.Manufacturer,
		BrandPrice:   first.Price + savings,
		GenericPrice: first.Price,
		Savings:      savings,
	}
}
