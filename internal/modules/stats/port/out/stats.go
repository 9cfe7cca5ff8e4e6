package out

import (
	"context"
	"time"

	"focusdeck/internal/modules/stats/domain"
)

// StatsStore is the fixed set of owner-scoped reads the aggregator issues.
// The reads are independent; no cross-query atomicity is promised, so a
// write landing between two of them may show in some facets and not others.
type StatsStore interface {
	CountSessions(ctx context.Context, owner string, completedOnly bool) (int, error)
	// SumCompletedMinutes treats an empty result set as 0, never an error.
	SumCompletedMinutes(ctx context.Context, owner string) (int, error)
	// DailyTotals groups sessions by calendar date. A zero since means no
	// lower bound (all time).
	DailyTotals(ctx context.Context, owner string, since time.Time, completedOnly bool) ([]domain.DayTotal, error)
	CompletedCountBetween(ctx context.Context, owner string, from, to time.Time) (int, error)
	DistinctCompletedDates(ctx context.Context, owner string) ([]string, error)
}
