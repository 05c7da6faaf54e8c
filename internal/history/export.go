package history

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var exportHeader = []string{"type", "medicine", "brand", "generic", "savings", "action", "occurred_at"}

// WriteCSV writes entries with a header row.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}

	for _, e := range entries {
		savings := ""
		if e.Savings != nil {
			savings = strconv.FormatFloat(*e.Savings, 'f', 2, 64)
		}
		if err := cw.Write([]string{
			e.Type,
			e.Medicine,
			deref(e.Brand),
			deref(e.Generic),
			savings,
			deref(e.Action),
			e.OccurredAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
