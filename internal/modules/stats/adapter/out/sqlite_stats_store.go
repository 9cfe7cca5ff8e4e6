package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"focusdeck/internal/modules/stats/domain"
	statsout "focusdeck/internal/modules/stats/port/out"
)

const timeLayout = time.RFC3339

// durationMinutes mirrors Session.DurationMin in SQL: whole minutes,
// rounded, clamped at 0. julianday deltas are fractional days, hence the
// 1440 factor.
const durationMinutes = `MAX(0, CAST(ROUND((julianday(ended_at) - julianday(started_at)) * 1440) AS INTEGER))`

// SQLiteStatsStore reads the sessions table written by the session module.
// It only ever groups by calendar date; weekday naming happens in the
// stats domain.
type SQLiteStatsStore struct {
	db *sql.DB
}

func NewSQLiteStatsStore(db *sql.DB) statsout.StatsStore {
	return &SQLiteStatsStore{db: db}
}

func (s *SQLiteStatsStore) CountSessions(ctx context.Context, owner string, completedOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM sessions WHERE owner_id = ?`
	if completedOnly {
		query += ` AND completed = 1`
	}
	var count int
	if err := s.db.QueryRowContext(ctx, query, owner).Scan(&count); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

func (s *SQLiteStatsStore) SumCompletedMinutes(ctx context.Context, owner string) (int, error) {
	query := `SELECT COALESCE(SUM(` + durationMinutes + `), 0) FROM sessions WHERE owner_id = ? AND completed = 1`
	var minutes int
	if err := s.db.QueryRowContext(ctx, query, owner).Scan(&minutes); err != nil {
		return 0, fmt.Errorf("sum focus minutes: %w", err)
	}
	return minutes, nil
}

func (s *SQLiteStatsStore) DailyTotals(ctx context.Context, owner string, since time.Time, completedOnly bool) ([]domain.DayTotal, error) {
	query := `
SELECT date(started_at) AS day, COUNT(*), SUM(` + durationMinutes + `)
FROM sessions WHERE owner_id = ?`
	args := []any{owner}
	if !since.IsZero() {
		query += ` AND started_at >= ?`
		args = append(args, since.UTC().Format(timeLayout))
	}
	if completedOnly {
		query += ` AND completed = 1`
	}
	query += ` GROUP BY day ORDER BY day`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()

	var totals []domain.DayTotal
	for rows.Next() {
		var total domain.DayTotal
		if err := rows.Scan(&total.Date, &total.Count, &total.Minutes); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		totals = append(totals, total)
	}
	return totals, rows.Err()
}

func (s *SQLiteStatsStore) CompletedCountBetween(ctx context.Context, owner string, from, to time.Time) (int, error) {
	const query = `
SELECT COUNT(*) FROM sessions
WHERE owner_id = ? AND completed = 1 AND started_at >= ? AND started_at < ?`
	var count int
	err := s.db.QueryRowContext(ctx, query, owner,
		from.UTC().Format(timeLayout), to.UTC().Format(timeLayout)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count completed between: %w", err)
	}
	return count, nil
}

func (s *SQLiteStatsStore) DistinctCompletedDates(ctx context.Context, owner string) ([]string, error) {
	const query = `
SELECT DISTINCT date(started_at) FROM sessions
WHERE owner_id = ? AND completed = 1 ORDER BY 1 DESC`
	rows, err := s.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("distinct completed dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}
