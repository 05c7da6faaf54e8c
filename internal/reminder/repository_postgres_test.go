package reminder

import (
	"context"
	"os"
	"testing"
	"time"

	"medsaver/internal/auth"
	"medsaver/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Runs only against a real database.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	pool, err := db.ConnectPostgres(context.Background(), dsn, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	users := auth.NewPostgresUserRepository(pool)
	user := &auth.User{
		Name:     "Reminder Tester",
		Email:    "reminders-" + uuid.NewString() + "@example.com",
		Password: "x",
		Role:     auth.RoleUser,
	}
	require.NoError(t, users.Save(context.Background(), user))
	t.Cleanup(func() {
		// cascades to reminders and reminder_logs
		_ = users.Delete(context.Background(), user.ID)
	})
	return user.ID
}

func ids(rs []Reminder) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestPostgresRepository_DispatchFlow(t *testing.T) {
	pool := openTestPool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()
	userID := createTestUser(t, pool)

	endDate := "2031-05-31"
	active := &Reminder{
		UserID:        userID,
		MedicineName:  "Metformin",
		Dosage:        DefaultDosage,
		Frequency:     DefaultFrequency,
		SpecificTimes: []string{"03:17", "21:43"},
		StartDate:     "2031-05-01",
		EndDate:       &endDate,
		IsActive:      true,
	}
	paused := &Reminder{
		UserID:        userID,
		MedicineName:  "Aspirin",
		Dosage:        DefaultDosage,
		Frequency:     DefaultFrequency,
		SpecificTimes: []string{"03:17"},
		StartDate:     "2031-05-01",
		IsActive:      false,
	}
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, paused))

	got, err := repo.Get(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"03:17", "21:43"}, got.SpecificTimes)
	assert.Equal(t, "2031-05-01", got.StartDate)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, endDate, *got.EndDate)

	// time match, inside the date window, active only
	due, err := repo.Due(ctx, "2031-05-10", "03:17")
	require.NoError(t, err)
	assert.Contains(t, ids(due), active.ID)
	assert.NotContains(t, ids(due), paused.ID)

	for _, tc := range []struct{ date, hhmm string }{
		{"2031-05-10", "03:18"},
		{"2031-04-30", "03:17"},
		{"2031-06-01", "03:17"},
	} {
		due, err := repo.Due(ctx, tc.date, tc.hhmm)
		require.NoError(t, err)
		assert.NotContains(t, ids(due), active.ID, "%s %s", tc.date, tc.hhmm)
	}

	// both ends of the window are inclusive
	due, err = repo.Due(ctx, endDate, "21:43")
	require.NoError(t, err)
	assert.Contains(t, ids(due), active.ID)

	scheduled := time.Date(2031, 5, 10, 3, 17, 0, 0, time.UTC)
	first := &Log{ReminderID: active.ID, UserID: userID, ScheduledTime: scheduled, Status: StatusPending}
	inserted, err := repo.CreateLog(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.False(t, first.CreatedAt.IsZero())

	dup := &Log{ReminderID: active.ID, UserID: userID, ScheduledTime: scheduled, Status: StatusPending}
	inserted, err = repo.CreateLog(ctx, dup)
	require.NoError(t, err)
	assert.False(t, inserted)

	logs, err := repo.ListLogs(ctx, active.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, first.ID, logs[0].ID)
	assert.True(t, logs[0].ScheduledTime.Equal(scheduled))
	assert.Nil(t, logs[0].Notes)

	takenAt := scheduled.Add(5 * time.Minute)
	notes := "with breakfast"
	l, err := repo.MarkTaken(ctx, active.ID, first.ID, takenAt, &notes)
	require.NoError(t, err)
	assert.Equal(t, StatusTaken, l.Status)
	require.NotNil(t, l.TakenAt)
	assert.True(t, l.TakenAt.Equal(takenAt))
	require.NotNil(t, l.Notes)
	assert.Equal(t, notes, *l.Notes)

	// nil notes keep the stored value
	l, err = repo.MarkTaken(ctx, active.ID, first.ID, takenAt, nil)
	require.NoError(t, err)
	require.NotNil(t, l.Notes)
	assert.Equal(t, notes, *l.Notes)

	_, err = repo.MarkTaken(ctx, paused.ID, first.ID, takenAt, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.MarkTaken(ctx, active.ID, "not-a-uuid", takenAt, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(ctx, userID, paused.ID))
	assert.ErrorIs(t, repo.Delete(ctx, userID, paused.ID), ErrNotFound)
}
