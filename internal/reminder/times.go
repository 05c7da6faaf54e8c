package reminder

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

const clockLayout = "15:04"

// NormalizeTime parses a 24h "H:MM" or "HH:MM" value and returns "HH:MM".
func NormalizeTime(s string) (string, error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: invalid time %q, want HH:MM", ErrInvalidInput, s)
	}
	return t.Format(clockLayout), nil
}

// NormalizeTimes normalizes, dedupes and sorts times.
func NormalizeTimes(times []string) ([]string, error) {
	seen := make(map[string]bool, len(times))
	out := make([]string, 0, len(times))
	for _, raw := range times {
		t, err := NormalizeTime(raw)
		if err != nil {
			return nil, err
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out, nil
}

func validDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

// ScheduledTime is the log key for a dose: the wall-clock date and time
// stored as if it were UTC.
func ScheduledTime(date, hhmm string) (time.Time, error) {
	return time.Parse(time.RFC3339, date+"T"+hhmm+":00Z")
}

// ActiveOn reports whether r should fire on date (YYYY-MM-DD).
func (r *Reminder) ActiveOn(date string) bool {
	if !r.IsActive || r.StartDate > date {
		return false
	}
	return r.EndDate == nil || *r.EndDate >= date
}

// HasTime reports whether hhmm is one of the reminder's times.
func (r *Reminder) HasTime(hhmm string) bool {
	for _, t := range r.SpecificTimes {
		if t == hhmm {
			return true
		}
	}
	return false
}

// ComputeAdherence summarizes logs. No logs counts as fully adherent.
func ComputeAdherence(logs []Log) Adherence {
	a := Adherence{Total: len(logs)}
	for _, l := range logs {
		if l.Status == StatusTaken {
			a.Taken++
		}
	}

	a.Percent = 100
	if a.Total > 0 {
		a.Percent = int(math.Round(100 * float64(a.Taken) / float64(a.Total)))
	}
	a.Label = AdherenceLabel(a.Percent)
	return a
}

func AdherenceLabel(percent int) string {
	switch {
	case percent >= 90:
		return "Excellent"
	case percent >= 70:
		return "Good"
	default:
		return "Needs Improvement"
	}
}

// NextOccurrences returns the next n firings after now across reminders,
// soonest first. Only today and tomorrow are considered.
func NextOccurrences(reminders []Reminder, now time.Time, n int) []Occurrence {
	var out []Occurrence
	today := now.Format(time.DateOnly)
	tomorrow := now.AddDate(0, 0, 1).Format(time.DateOnly)

	for _, r := range reminders {
		for _, hhmm := range r.SpecificTimes {
			clock, err := time.Parse(clockLayout, hhmm)
			if err != nil {
				continue
			}
			at := time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location())

			switch {
			case at.After(now) && r.ActiveOn(today):
			case r.ActiveOn(tomorrow):
				at = at.AddDate(0, 0, 1)
			default:
				continue
			}

			out = append(out, Occurrence{
				ReminderID:   r.ID,
				MedicineName: r.MedicineName,
				Dosage:       r.Dosage,
				Time:         hhmm,
				At:           at,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
