package medicine

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var catalogueColumns = []string{
	"name",
	"manufacturer_name",
	"price",
	"type",
	"pack_size_label",
	"short_composition1",
	"short_composition2",
	"is_discontinued",
}

// ParseCatalogue reads catalogue rows from CSV. Columns are matched by header
// name; only "name" is required. Rows with a blank name are skipped.
func ParseCatalogue(r io.Reader) ([]CatalogueEntry, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty catalogue file", ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrInvalidInput, err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))] = i
	}
	if _, ok := index["name"]; !ok {
		return nil, fmt.Errorf("%w: header must include %q (expected %s)",
			ErrInvalidInput, "name", strings.Join(catalogueColumns, ","))
	}

	field := func(rec []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var entries []CatalogueEntry
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidInput, line, err)
		}

		name := field(rec, "name")
		if name == "" {
			continue
		}

		e := CatalogueEntry{
			Name:              name,
			ManufacturerName:  field(rec, "manufacturer_name"),
			Type:              field(rec, "type"),
			PackSizeLabel:     field(rec, "pack_size_label"),
			ShortComposition1: field(rec, "short_composition1"),
			ShortComposition2: field(rec, "short_composition2"),
		}

		if raw := field(rec, "price"); raw != "" {
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil || price < 0 {
				return nil, fmt.Errorf("%w: line %d: invalid price %q", ErrInvalidInput, line, raw)
			}
			e.Price = price
		}

		if raw := field(rec, "is_discontinued"); raw != "" {
			disc, err := strconv.ParseBool(strings.ToLower(raw))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: invalid is_discontinued %q", ErrInvalidInput, line, raw)
			}
			e.IsDiscontinued = disc
		}

		entries = append(entries, e)
	}
	return entries, nil
}

// ImportCSV parses r and loads the rows into the catalogue.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (int64, error) {
	entries, err := ParseCatalogue(r)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	n, err := s.catalogue.Import(ctx, entries)
	if err != nil {
		return 0, fmt.Errorf("import catalogue: %w", err)
	}

	s.log.Info("catalogue imported", zap.Int64("rows", n))
	return n, nil
}
