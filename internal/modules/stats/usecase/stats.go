package usecase

import (
	"context"
	"strings"

	"focusdeck/internal/modules/stats/domain"
	"focusdeck/internal/modules/stats/dto"
	statsin "focusdeck/internal/modules/stats/port/in"
	"focusdeck/internal/modules/stats/service"
	apperrors "focusdeck/internal/platform/errors"
)

type Interactor struct {
	svc *service.StatsService
}

func NewInteractor(svc *service.StatsService) statsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Compute(ctx context.Context, owner string) (dto.Output, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return dto.Output{}, apperrors.ErrUnauthenticated
	}
	summary, err := i.svc.Compute(ctx, owner)
	if err != nil {
		return dto.Output{}, err
	}
	return toOutput(summary), nil
}

func toOutput(summary domain.Summary) dto.Output {
	heatmap := make([]dto.HeatmapEntry, len(summary.Heatmap))
	for idx, entry := range summary.Heatmap {
		heatmap[idx] = dto.HeatmapEntry{Date: entry.Date, Count: entry.Count, Minutes: entry.Minutes}
	}
	return dto.Output{
		TotalSessions:         summary.TotalSessions,
		CompletedSessions:     summary.CompletedSessions,
		TotalFocusMinutes:     summary.TotalFocusMinutes,
		AverageSessionMinutes: summary.AverageSessionMinutes,
		ActivityLast7Days:     toBuckets(summary.ActivityLast7Days),
		ActivityLast30Days:    toBuckets(summary.ActivityLast30Days),
		ActivityLast90Days:    toBuckets(summary.ActivityLast90Days),
		MostProductiveDay:     summary.MostProductiveDay,
		AverageDailySessions:  summary.AverageDailySessions,
		WeeklyChange:          summary.WeeklyChange,
		CurrentStreak:         summary.CurrentStreak,
		Heatmap:               heatmap,
	}
}

func toBuckets(buckets map[string]domain.DayBucket) map[string]dto.DayBucket {
	out := make(map[string]dto.DayBucket, len(buckets))
	for name, bucket := range buckets {
		out[name] = dto.DayBucket{Count: bucket.Count, TotalMinutes: bucket.TotalMinutes}
	}
	return out
}
