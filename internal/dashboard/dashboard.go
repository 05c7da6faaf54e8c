package dashboard

import (
	"context"
	"fmt"
	"time"

	"medsaver/internal/history"
	"medsaver/internal/profile"
	"medsaver/internal/reminder"
)

const (
	recentLimit   = 3
	upcomingLimit = 3
)

type Stats struct {
	ScansThisMonth  int     `json:"scans_this_month"`
	TotalSavings    float64 `json:"total_savings"`
	ActiveReminders int     `json:"active_reminders"`
	Searches        int     `json:"searches"`
}

type Overview struct {
	DisplayName       string                `json:"display_name"`
	Stats             Stats                 `json:"stats"`
	RecentActivity    []history.Entry       `json:"recent_activity"`
	UpcomingReminders []reminder.Occurrence `json:"upcoming_reminders"`
}

type ProfileGetter interface {
	Get(ctx context.Context, userID, email string) (*profile.View, error)
}

type HistoryLister interface {
	List(ctx context.Context, userID string, f history.Filter) ([]history.Entry, error)
}

type ReminderReader interface {
	CountActive(ctx context.Context, userID string) (int, error)
	Upcoming(ctx context.Context, userID string, now time.Time, n int) ([]reminder.Occurrence, error)
}

type Service struct {
	profiles  ProfileGetter
	history   HistoryLister
	reminders ReminderReader
	now       func() time.Time
}

func NewService(profiles ProfileGetter, history HistoryLister, reminders ReminderReader) *Service {
	return &Service{
		profiles:  profiles,
		history:   history,
		reminders: reminders,
		now:       time.Now,
	}
}

func (s *Service) Overview(ctx context.Context, userID, email string) (*Overview, error) {
	now := s.now()

	view, err := s.profiles.Get(ctx, userID, email)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	entries, err := s.history.List(ctx, userID, history.Filter{Type: history.TypeAll})
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	active, err := s.reminders.CountActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count reminders: %w", err)
	}

	upcoming, err := s.reminders.Upcoming(ctx, userID, now, upcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("upcoming reminders: %w", err)
	}
	if upcoming == nil {
		upcoming = []reminder.Occurrence{}
	}

	stats := Stats{
		TotalSavings:    history.Summarize(entries, entries).TotalSavings,
		ActiveReminders: active,
	}
	year, month, _ := now.Date()
	for _, e := range entries {
		switch e.Type {
		case history.TypeScan:
			y, m, _ := e.OccurredAt.In(now.Location()).Date()
			if y == year && m == month {
				stats.ScansThisMonth++
			}
		case history.TypeSearch:
			stats.Searches++
		}
	}

	recent := entries
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return &Overview{
		DisplayName:       view.DisplayName,
		Stats:             stats,
		RecentActivity:    recent,
		UpcomingReminders: upcoming,
	}, nil
}
