package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	sessionstore "focusdeck/internal/modules/session/adapter/out"
	sessiondomain "focusdeck/internal/modules/session/domain"
	statsstore "focusdeck/internal/modules/stats/adapter/out"
	statsout "focusdeck/internal/modules/stats/port/out"
	"focusdeck/internal/platform/sqlite"
)

func newStores(t *testing.T) (statsout.StatsStore, func(owner, id string, start time.Time, minutes int, completed bool)) {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "focusdeck.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	sessions, err := sessionstore.NewSQLiteSessionStore(db)
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	seed := func(owner, id string, start time.Time, minutes int, completed bool) {
		t.Helper()
		err := sessions.Insert(context.Background(), sessiondomain.Session{
			ID:        id,
			OwnerID:   owner,
			Label:     "Focus session",
			StartedAt: start,
			EndedAt:   start.Add(time.Duration(minutes) * time.Minute),
			Completed: completed,
			CreatedAt: start,
		})
		if err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}
	return statsstore.NewSQLiteStatsStore(db), seed
}

func TestCountAndSum(t *testing.T) {
	t.Parallel()
	store, seed := newStores(t)
	ctx := context.Background()
	day := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	seed("alice", "s1", day, 25, true)
	seed("alice", "s2", day.Add(time.Hour), 30, true)
	seed("alice", "s3", day.Add(2*time.Hour), 10, false)
	seed("bob", "s4", day, 99, true)

	total, err := store.CountSessions(ctx, "alice", false)
	if err != nil || total != 3 {
		t.Fatalf("total = %d, err = %v", total, err)
	}
	completed, err := store.CountSessions(ctx, "alice", true)
	if err != nil || completed != 2 {
		t.Fatalf("completed = %d, err = %v", completed, err)
	}

	// Abandoned minutes never count; bob's sessions never leak in.
	minutes, err := store.SumCompletedMinutes(ctx, "alice")
	if err != nil || minutes != 55 {
		t.Fatalf("minutes = %d, err = %v", minutes, err)
	}

	minutes, err = store.SumCompletedMinutes(ctx, "nobody")
	if err != nil || minutes != 0 {
		t.Fatalf("empty owner should sum to 0, got %d err %v", minutes, err)
	}
}

func TestDailyTotalsGroupsByCalendarDate(t *testing.T) {
	t.Parallel()
	store, seed := newStores(t)
	ctx := context.Background()

	seed("alice", "s1", time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC), 25, true)
	seed("alice", "s2", time.Date(2026, 8, 27, 15, 0, 0, 0, time.UTC), 35, true)
	seed("alice", "s3", time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC), 20, false)
	seed("alice", "s4", time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC), 25, true)

	since := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	totals, err := store.DailyTotals(ctx, "alice", since, false)
	if err != nil {
		t.Fatalf("daily totals: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected two days inside the window, got %+v", totals)
	}
	if totals[0].Date != "2026-08-27" || totals[0].Count != 2 || totals[0].Minutes != 60 {
		t.Fatalf("first day mismatch: %+v", totals[0])
	}
	if totals[1].Date != "2026-08-28" || totals[1].Count != 1 {
		t.Fatalf("second day mismatch: %+v", totals[1])
	}

	// completedOnly drops the abandoned session's date entirely.
	totals, err = store.DailyTotals(ctx, "alice", since, true)
	if err != nil {
		t.Fatalf("daily totals completed: %v", err)
	}
	if len(totals) != 1 || totals[0].Date != "2026-08-27" {
		t.Fatalf("completed-only mismatch: %+v", totals)
	}

	// Zero since means all time.
	totals, err = store.DailyTotals(ctx, "alice", time.Time{}, true)
	if err != nil {
		t.Fatalf("daily totals all time: %v", err)
	}
	if len(totals) != 2 || totals[0].Date != "2026-06-01" {
		t.Fatalf("all-time mismatch: %+v", totals)
	}
}

func TestCompletedCountBetweenHalfOpen(t *testing.T) {
	t.Parallel()
	store, seed := newStores(t)
	ctx := context.Background()

	boundary := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	seed("alice", "s1", boundary.Add(-time.Minute), 25, true) // just before
	seed("alice", "s2", boundary, 25, true)                   // exactly at from
	seed("alice", "s3", boundary.AddDate(0, 0, 7), 25, true)  // exactly at to

	count, err := store.CompletedCountBetween(ctx, "alice", boundary, boundary.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("count between: %v", err)
	}
	if count != 1 {
		t.Fatalf("window must include from and exclude to, got %d", count)
	}
}

func TestDistinctCompletedDates(t *testing.T) {
	t.Parallel()
	store, seed := newStores(t)
	ctx := context.Background()

	seed("alice", "s1", time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC), 25, true)
	seed("alice", "s2", time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC), 25, true)
	seed("alice", "s3", time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC), 25, true)
	seed("alice", "s4", time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC), 25, false)

	dates, err := store.DistinctCompletedDates(ctx, "alice")
	if err != nil {
		t.Fatalf("distinct dates: %v", err)
	}
	want := []string{"2026-08-28", "2026-08-26"}
	if len(dates) != len(want) {
		t.Fatalf("expected %v, got %v", want, dates)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, dates)
		}
	}
}
