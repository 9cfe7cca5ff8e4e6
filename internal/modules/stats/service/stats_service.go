package service

import (
	"context"
	"time"

	"focusdeck/internal/modules/stats/domain"
	statsout "focusdeck/internal/modules/stats/port/out"
	"focusdeck/internal/platform/clock"
)

type StatsService struct {
	clock clock.Clock
	store statsout.StatsStore
}

func NewStatsService(clock clock.Clock, store statsout.StatsStore) *StatsService {
	return &StatsService{clock: clock, store: store}
}

// Compute builds the composite summary from the fixed set of store reads.
// Read-only; safe to call repeatedly and concurrently.
func (s *StatsService) Compute(ctx context.Context, owner string) (domain.Summary, error) {
	now := s.clock.Now()

	total, err := s.store.CountSessions(ctx, owner, false)
	if err != nil {
		return domain.Summary{}, err
	}
	completed, err := s.store.CountSessions(ctx, owner, true)
	if err != nil {
		return domain.Summary{}, err
	}
	focusMinutes, err := s.store.SumCompletedMinutes(ctx, owner)
	if err != nil {
		return domain.Summary{}, err
	}
	averageMinutes := 0.0
	if completed > 0 {
		averageMinutes = float64(focusMinutes) / float64(completed)
	}

	last7, err := s.store.DailyTotals(ctx, owner, now.AddDate(0, 0, -7), false)
	if err != nil {
		return domain.Summary{}, err
	}
	last30, err := s.store.DailyTotals(ctx, owner, now.AddDate(0, 0, -30), false)
	if err != nil {
		return domain.Summary{}, err
	}
	last90, err := s.store.DailyTotals(ctx, owner, now.AddDate(0, 0, -90), false)
	if err != nil {
		return domain.Summary{}, err
	}
	allCompleted, err := s.store.DailyTotals(ctx, owner, time.Time{}, true)
	if err != nil {
		return domain.Summary{}, err
	}

	currentWeek, err := s.store.CompletedCountBetween(ctx, owner, now.AddDate(0, 0, -7), now)
	if err != nil {
		return domain.Summary{}, err
	}
	previousWeek, err := s.store.CompletedCountBetween(ctx, owner, now.AddDate(0, 0, -14), now.AddDate(0, 0, -7))
	if err != nil {
		return domain.Summary{}, err
	}

	completedDates, err := s.store.DistinctCompletedDates(ctx, owner)
	if err != nil {
		return domain.Summary{}, err
	}

	return domain.Summary{
		TotalSessions:         total,
		CompletedSessions:     completed,
		TotalFocusMinutes:     focusMinutes,
		AverageSessionMinutes: averageMinutes,
		ActivityLast7Days:     domain.WeekdayBuckets(last7),
		ActivityLast30Days:    domain.WeekdayBuckets(last30),
		ActivityLast90Days:    domain.WeekdayBuckets(last90),
		MostProductiveDay:     domain.MostProductiveDay(allCompleted),
		AverageDailySessions:  domain.AverageDailySessions(last30),
		WeeklyChange:          domain.WeeklyChange(previousWeek, currentWeek),
		CurrentStreak:         domain.Streak(completedDates),
		Heatmap:               domain.Heatmap(last90),
	}, nil
}
