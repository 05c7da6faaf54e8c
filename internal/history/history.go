// Package history merges scans, searches and reminder creations into one
// newest-first timeline with savings totals.
package history

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"medsaver/internal/generics"
	"medsaver/internal/medicine"
	"medsaver/internal/reminder"
	"medsaver/internal/scan"
)

var ErrInvalidInput = errors.New("invalid history filter")

const (
	TypeAll      = "all"
	TypeScan     = "scan"
	TypeSearch   = "search"
	TypeReminder = "reminder"

	actionReminderSet = "Reminder set"
)

type Entry struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Medicine   string    `json:"medicine"`
	Brand      *string   `json:"brand,omitempty"`
	Generic    *string   `json:"generic,omitempty"`
	Savings    *float64  `json:"savings,omitempty"`
	Action     *string   `json:"action,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Summary struct {
	TotalSavings   float64 `json:"total_savings"`
	SavingEvents   int     `json:"saving_events"`
	AverageSavings float64 `json:"average_savings"`
	ItemsShown     int     `json:"items_shown"`
}

type Filter struct {
	Type  string
	Query string
}

type ScanLister interface {
	List(ctx context.Context, userID string) ([]scan.Scan, error)
}

type SearchLister interface {
	ListSearches(ctx context.Context, userID string) ([]medicine.Search, error)
}

type ReminderLister interface {
	List(ctx context.Context, userID string) ([]reminder.Reminder, error)
}

type Service struct {
	scans     ScanLister
	searches  SearchLister
	reminders ReminderLister
}

func NewService(scans ScanLister, searches SearchLister, reminders ReminderLister) *Service {
	return &Service{scans: scans, searches: searches, reminders: reminders}
}

// List returns the user's entries matching f, newest first.
func (s *Service) List(ctx context.Context, userID string, f Filter) ([]Entry, error) {
	typ, err := normalizeType(f.Type)
	if err != nil {
		return nil, err
	}

	entries, err := s.load(ctx, userID, typ)
	if err != nil {
		return nil, err
	}
	return finish(filterQuery(entries, f.Query)), nil
}

// Page returns the entries matching f together with a summary whose savings
// figures cover the whole history. Only ItemsShown follows the filter.
func (s *Service) Page(ctx context.Context, userID string, f Filter) ([]Entry, Summary, error) {
	typ, err := normalizeType(f.Type)
	if err != nil {
		return nil, Summary{}, err
	}

	all, err := s.load(ctx, userID, TypeAll)
	if err != nil {
		return nil, Summary{}, err
	}

	shown := filterQuery(filterType(all, typ), f.Query)
	return finish(shown), Summarize(all, shown), nil
}

func normalizeType(t string) (string, error) {
	typ := strings.ToLower(strings.TrimSpace(t))
	if typ == "" {
		typ = TypeAll
	}
	switch typ {
	case TypeAll, TypeScan, TypeSearch, TypeReminder:
		return typ, nil
	default:
		return "", fmt.Errorf("%w: unknown type %q", ErrInvalidInput, t)
	}
}

func (s *Service) load(ctx context.Context, userID, typ string) ([]Entry, error) {
	var entries []Entry

	if typ == TypeAll || typ == TypeScan {
		scans, err := s.scans.List(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list scans: %w", err)
		}
		for _, sc := range scans {
			entries = append(entries, fromScan(sc))
		}
	}

	if typ == TypeAll || typ == TypeSearch {
		searches, err := s.searches.ListSearches(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list searches: %w", err)
		}
		for _, se := range searches {
			entries = append(entries, fromSearch(se))
		}
	}

	if typ == TypeAll || typ == TypeReminder {
		reminders, err := s.reminders.List(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list reminders: %w", err)
		}
		for _, r := range reminders {
			entries = append(entries, fromReminder(r))
		}
	}
	return entries, nil
}

// finish sorts newest first and never returns nil.
func finish(entries []Entry) []Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OccurredAt.After(entries[j].OccurredAt)
	})
	if entries == nil {
		entries = []Entry{}
	}
	return entries
}

// Summarize totals the savings across all and counts the shown entries.
func Summarize(all, shown []Entry) Summary {
	sum := Summary{ItemsShown: len(shown)}
	for _, e := range all {
		if e.Savings != nil && *e.Savings > 0 {
			sum.TotalSavings += *e.Savings
			sum.SavingEvents++
		}
	}
	if sum.SavingEvents > 0 {
		sum.AverageSavings = sum.TotalSavings / float64(sum.SavingEvents)
	}
	return sum
}

func fromScan(sc scan.Scan) Entry {
	e := Entry{
		ID:         sc.ID,
		Type:       TypeScan,
		Medicine:   sc.ExtractedText,
		Brand:      nonEmpty(sc.DetectedMedicineName),
		Generic:    firstName(sc.GenericSuggestions),
		Savings:    &sc.PriceSavings,
		OccurredAt: sc.ScanTimestamp,
	}
	if e.Medicine == "" {
		e.Medicine = sc.DetectedMedicineName
	}
	return e
}

func fromSearch(se medicine.Search) Entry {
	savings := generics.MaxSavings(se.GenericAlternatives)
	return Entry{
		ID:         se.ID,
		Type:       TypeSearch,
		Medicine:   se.SearchQuery,
		Brand:      nonEmpty(se.MedicineFound.Name),
		Generic:    firstName(se.GenericAlternatives),
		Savings:    &savings,
		OccurredAt: se.SearchTimestamp,
	}
}

func fromReminder(r reminder.Reminder) Entry {
	action := actionReminderSet
	return Entry{
		ID:         r.ID,
		Type:       TypeReminder,
		Medicine:   r.MedicineName,
		Action:     &action,
		OccurredAt: r.CreatedAt,
	}
}

func filterType(entries []Entry, typ string) []Entry {
	if typ == TypeAll {
		return entries
	}
	var out []Entry
	for _, e := range entries {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func filterQuery(entries []Entry, q string) []Entry {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return entries
	}

	var out []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Medicine), q) ||
			(e.Brand != nil && strings.Contains(strings.ToLower(*e.Brand), q)) {
			out = append(out, e)
		}
	}
	return out
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func firstName(alts []generics.Alternative) *string {
	if len(alts) == 0 {
		return nil
	}
	return nonEmpty(alts[0].Name)
}
