package domain

import (
	"sort"
	"time"
)

// DateLayout is the calendar-date key used by all grouped reads. Weekday
// names are always derived here from the parsed date, never taken from the
// store's own text formatting.
const DateLayout = "2006-01-02"

// DayTotal is one calendar date's aggregate as supplied by the store.
type DayTotal struct {
	Date    string
	Count   int
	Minutes int
}

// DayBucket is a per-weekday aggregate inside one lookback window.
type DayBucket struct {
	Count        int
	TotalMinutes int
}

type HeatmapEntry struct {
	Date    string
	Count   int
	Minutes int
}

// Summary is the composite analytics structure for one owner.
type Summary struct {
	TotalSessions         int
	CompletedSessions     int
	TotalFocusMinutes     int
	AverageSessionMinutes float64
	ActivityLast7Days     map[string]DayBucket
	ActivityLast30Days    map[string]DayBucket
	ActivityLast90Days    map[string]DayBucket
	MostProductiveDay     string
	AverageDailySessions  float64
	WeeklyChange          float64
	CurrentStreak         int
	Heatmap               []HeatmapEntry
}

// WeekdayBuckets folds per-date totals into per-weekday-name buckets.
// Weekdays with no sessions are simply absent from the map.
func WeekdayBuckets(days []DayTotal) map[string]DayBucket {
	buckets := make(map[string]DayBucket)
	for _, day := range days {
		name, ok := weekdayName(day.Date)
		if !ok {
			continue
		}
		bucket := buckets[name]
		bucket.Count += day.Count
		bucket.TotalMinutes += day.Minutes
		buckets[name] = bucket
	}
	return buckets
}

// MostProductiveDay returns the weekday name with the highest summed
// minutes, or "" when there is no data. Ties resolve to the earlier
// weekday (Sunday first) so the result is deterministic.
func MostProductiveDay(days []DayTotal) string {
	minutes := make(map[string]int)
	for _, day := range days {
		name, ok := weekdayName(day.Date)
		if !ok {
			continue
		}
		minutes[name] += day.Minutes
	}
	best := ""
	bestMinutes := -1
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := wd.String()
		if total, ok := minutes[name]; ok && total > bestMinutes {
			best = name
			bestMinutes = total
		}
	}
	return best
}

// AverageDailySessions is the mean session count per active calendar date,
// not per elapsed day: only dates with at least one session divide the sum.
func AverageDailySessions(days []DayTotal) float64 {
	if len(days) == 0 {
		return 0
	}
	total := 0
	for _, day := range days {
		total += day.Count
	}
	return float64(total) / float64(len(days))
}

// WeeklyChange is the percentage change from the previous to the current
// completed-session count. A zero baseline yields 0 when the current count
// is also zero, otherwise a flat 100 (capped "increase from nothing").
func WeeklyChange(previous, current int) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return float64(current-previous) / float64(previous) * 100
}

// Streak is the length of the most recent unbroken run of consecutive
// calendar dates. Input is the distinct set of dates with at least one
// completed session, in any order; the walk runs over the descending sort
// and stops at the first gap larger than one day.
func Streak(dates []string) int {
	parsed := make([]time.Time, 0, len(dates))
	for _, date := range dates {
		day, err := time.Parse(DateLayout, date)
		if err != nil {
			continue
		}
		parsed = append(parsed, day)
	}
	if len(parsed) == 0 {
		return 0
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].After(parsed[j]) })

	streak := 1
	for i := 1; i < len(parsed); i++ {
		if parsed[i-1].Sub(parsed[i]) != 24*time.Hour {
			break
		}
		streak++
	}
	return streak
}

// Heatmap reshapes per-date totals into heatmap entries ordered by date
// ascending. Dates without sessions never appear (sparse by construction).
func Heatmap(days []DayTotal) []HeatmapEntry {
	entries := make([]HeatmapEntry, len(days))
	for idx, day := range days {
		entries[idx] = HeatmapEntry{Date: day.Date, Count: day.Count, Minutes: day.Minutes}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	return entries
}

func weekdayName(date string) (string, bool) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", false
	}
	return day.Weekday().String(), true
}
