package generics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForScan(t *testing.T) {
	alts := ForScan("Anything")
	require.Len(t, alts, 2)

	assert.Equal(t, "Generic Paracetamol", alts[0].Name)
	assert.Equal(t, 25.00, alts[0].Price)
	assert.Equal(t, "Acetaminophen", alts[1].Name)
	assert.Equal(t, 18.00, MaxSavings(alts))
}

func TestForSearch(t *testing.T) {
	alts := ForSearch("Metformin")
	require.Len(t, alts, 2)

	assert.Equal(t, "Generic Metformin", alts[0].Name)
	assert.Equal(t, "Alternative Metformin", alts[1].Name)
	assert.Equal(t, "Available", alts[1].Availability)
	assert.Equal(t, "Tablet", alts[0].Type)
}

func TestMockBrand(t *testing.T) {
	m := MockBrand("Metformin")
	assert.Equal(t, "Metformin", m.Name)
	assert.Equal(t, 40.00, m.Price)
	assert.Equal(t, []string{"Pregnancy", "Liver disease"}, m.Contraindications)
}

func TestMaxSavings_Empty(t *testing.T) {
	assert.Zero(t, MaxSavings(nil))
}

func TestQuoteFor(t *testing.T) {
	q := QuoteFor(ForScan("Paracetamol"), 18)
	assert.Equal(t, "Generic Paracetamol", q.Generic)
	assert.Equal(t, 43.00, q.BrandPrice)
	assert.Equal(t, 25.00, q.GenericPrice)

	empty := QuoteFor(nil, 0)
	assert.Equal(t, "Generic Alternative", empty.Generic)
	assert.Equal(t, "Various", empty.Manufacturer)
}
