package reminder

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu        sync.RWMutex
	reminders map[string]Reminder
	logs      map[string]Log
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		reminders: make(map[string]Reminder),
		logs:      make(map[string]Log),
	}
}

func (m *InMemoryRepository) Create(ctx context.Context, r *Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now()
	r.CreatedAt, r.UpdatedAt = now, now
	m.reminders[r.ID] = clone(*r)
	return nil
}

func (m *InMemoryRepository) Get(ctx context.Context, id string) (*Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.reminders[id]
	if !ok {
		return nil, ErrNotFound
	}
	r = clone(r)
	return &r, nil
}

func (m *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []Reminder{}
	for _, r := range m.reminders {
		if r.UserID == userID {
			out = append(out, clone(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *InMemoryRepository) Save(ctx context.Context, r *Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reminders[r.ID]; !ok {
		return ErrNotFound
	}
	r.UpdatedAt = time.Now()
	m.reminders[r.ID] = clone(*r)
	return nil
}

func (m *InMemoryRepository) Delete(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.reminders[id]
	if !ok || r.UserID != userID {
		return ErrNotFound
	}
	delete(m.reminders, id)
	for logID, l := range m.logs {
		if l.ReminderID == id {
			delete(m.logs, logID)
		}
	}
	return nil
}

func (m *InMemoryRepository) Due(ctx context.Context, date, hhmm string) ([]Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []Reminder{}
	for _, r := range m.reminders {
		if r.ActiveOn(date) && r.HasTime(hhmm) {
			out = append(out, clone(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *InMemoryRepository) CreateLog(ctx context.Context, l *Log) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.logs {
		if existing.ReminderID == l.ReminderID && existing.ScheduledTime.Equal(l.ScheduledTime) {
			return false, nil
		}
	}
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	l.CreatedAt = time.Now()
	m.logs[l.ID] = *l
	return true, nil
}

func (m *InMemoryRepository) ListLogs(ctx context.Context, reminderID string) ([]Log, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []Log{}
	for _, l := range m.logs {
		if l.ReminderID == reminderID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledTime.After(out[j].ScheduledTime) })
	return out, nil
}

func (m *InMemoryRepository) MarkTaken(ctx context.Context, reminderID, logID string, takenAt time.Time, notes *string) (*Log, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.logs[logID]
	if !ok || l.ReminderID != reminderID {
		return nil, ErrNotFound
	}
	l.Status = StatusTaken
	l.TakenAt = &takenAt
	if notes != nil {
		l.Notes = notes
	}
	m.logs[logID] = l
	return &l, nil
}

func clone(r Reminder) Reminder {
	r.SpecificTimes = append([]string(nil), r.SpecificTimes...)
	return r
}
