package history

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medsaver/internal/generics"
	"medsaver/internal/medicine"
	"medsaver/internal/reminder"
	"medsaver/internal/scan"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScans []scan.Scan

func (f fakeScans) List(ctx context.Context, userID string) ([]scan.Scan, error) { return f, nil }

type fakeSearches []medicine.Search

func (f fakeSearches) ListSearches(ctx context.Context, userID string) ([]medicine.Search, error) {
	return f, nil
}

type fakeReminders []reminder.Reminder

func (f fakeReminders) List(ctx context.Context, userID string) ([]reminder.Reminder, error) {
	return f, nil
}

type failingReminders struct{}

func (failingReminders) List(ctx context.Context, userID string) ([]reminder.Reminder, error) {
	return nil, errors.New("connection reset")
}

var base = time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)

func newTestService() *Service {
	suggestions := generics.ForScan("Paracetamol")
	return NewService(
		fakeScans{{
			ID:                   "scan-1",
			ExtractedText:        "Paracetamol 500mg Tablets",
			DetectedMedicineName: "Paracetamol",
			GenericSuggestions:   suggestions,
			PriceSavings:         generics.MaxSavings(suggestions),
			ScanTimestamp:        base.Add(-2 * time.Hour),
		}},
		fakeSearches{{
			ID:                  "search-1",
			SearchQuery:         "Crocin",
			MedicineFound:       generics.MockBrand("Crocin"),
			GenericAlternatives: generics.ForSearch("Crocin"),
			SearchTimestamp:     base,
		}},
		fakeReminders{{
			ID:           "rem-1",
			MedicineName: "Metformin",
			CreatedAt:    base.Add(-time.Hour),
		}},
	)
}

func TestList_MergedNewestFirst(t *testing.T) {
	entries, err := newTestService().List(context.Background(), "u1", Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, TypeSearch, entries[0].Type)
	assert.Equal(t, "Crocin", entries[0].Medicine)
	assert.Equal(t, "Generic Crocin", *entries[0].Generic)
	assert.Equal(t, 18.0, *entries[0].Savings)

	assert.Equal(t, TypeReminder, entries[1].Type)
	assert.Equal(t, "Reminder set", *entries[1].Action)
	assert.Nil(t, entries[1].Savings)

	assert.Equal(t, TypeScan, entries[2].Type)
	assert.Equal(t, "Paracetamol", *entries[2].Brand)
	assert.Equal(t, "Generic Paracetamol", *entries[2].Generic)
}

func TestList_Filters(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	entries, err := svc.List(ctx, "u1", Filter{Type: "scan"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "scan-1", entries[0].ID)

	entries, err = svc.List(ctx, "u1", Filter{Query: "PARACETAMOL"})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entries, err = svc.List(ctx, "u1", Filter{Type: "reminder", Query: "crocin"})
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NotNil(t, entries)

	_, err = svc.List(ctx, "u1", Filter{Type: "favorites"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_PropagatesErrors(t *testing.T) {
	svc := NewService(fakeScans{}, fakeSearches{}, failingReminders{})

	_, err := svc.List(context.Background(), "u1", Filter{})
	assert.Error(t, err)

	// reminders are not read for a scan-only view
	_, err = svc.List(context.Background(), "u1", Filter{Type: TypeScan})
	assert.NoError(t, err)
}

func TestSummarize(t *testing.T) {
	entries, err := newTestService().List(context.Background(), "u1", Filter{})
	require.NoError(t, err)

	sum := Summarize(entries, entries)
	assert.Equal(t, 36.0, sum.TotalSavings)
	assert.Equal(t, 2, sum.SavingEvents)
	assert.Equal(t, 18.0, sum.AverageSavings)
	assert.Equal(t, 3, sum.ItemsShown)

	assert.Equal(t, Summary{}, Summarize(nil, nil))
}

func TestPage_SummaryCoversWholeHistory(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, f := range []Filter{{Type: "reminder"}, {Query: "crocin"}, {Type: "scan", Query: "nothing"}} {
		entries, sum, err := svc.Page(ctx, "u1", f)
		require.NoError(t, err)
		assert.Equal(t, 36.0, sum.TotalSavings, "filter %+v", f)
		assert.Equal(t, 2, sum.SavingEvents, "filter %+v", f)
		assert.Equal(t, 18.0, sum.AverageSavings, "filter %+v", f)
		assert.Equal(t, len(entries), sum.ItemsShown, "filter %+v", f)
	}

	entries, sum, err := svc.Page(ctx, "u1", Filter{Type: "reminder"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "rem-1", entries[0].ID)
	assert.Equal(t, 1, sum.ItemsShown)

	_, _, err = svc.Page(ctx, "u1", Filter{Type: "favorites"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWriteCSV(t *testing.T) {
	entries, err := newTestService().List(context.Background(), "u1", Filter{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, entries))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"type", "medicine", "brand", "generic", "savings", "action", "occurred_at"}, rows[0])
	assert.Equal(t, []string{"search", "Crocin", "Crocin", "Generic Crocin", "18.00", "", "2025-03-09T10:00:00Z"}, rows[1])
	assert.Equal(t, "Reminder set", rows[2][5])
	assert.Equal(t, "", rows[2][4])
}

func TestHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", "u1")
		c.Next()
	})
	h := NewHandler(newTestService())
	r.GET("/history", h.List)
	r.GET("/history/export", h.Export)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history?type=search", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Entries []Entry `json:"entries"`
		Summary Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Entries, 1)
	assert.Equal(t, 1, body.Summary.ItemsShown)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history?type=reminder", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body.Entries, body.Summary = nil, Summary{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Entries, 1)
	assert.Equal(t, 1, body.Summary.ItemsShown)
	assert.Equal(t, 36.0, body.Summary.TotalSavings)
	assert.Equal(t, 2, body.Summary.SavingEvents)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history?type=bogus", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history/export", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "type,medicine,brand,generic,savings,action,occurred_at")
}
