package dto

type DayBucket struct {
	Count        int
	TotalMinutes int
}

type HeatmapEntry struct {
	Date    string
	Count   int
	Minutes int
}

type Output struct {
	TotalSessions         int
	CompletedSessions     int
	TotalFocusMinutes     int
	AverageSessionMinutes float64
	ActivityLast7Days     map[string]DayBucket
	ActivityLast30Days    map[string]DayBucket
	ActivityLast90Days    map[string]DayBucket
	// MostProductiveDay is empty when the owner has no completed session.
	MostProductiveDay    string
	AverageDailySessions float64
	WeeklyChange         float64
	CurrentStreak        int
	Heatmap              []HeatmapEntry
}
