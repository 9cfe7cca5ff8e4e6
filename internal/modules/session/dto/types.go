package dto

import "time"

type CreateInput struct {
	Owner     string
	Label     string
	StartedAt time.Time // zero value means "now"
	EndedAt   time.Time // zero value means started + default interval
	Completed bool
}

type PatchInput struct {
	Label     *string
	StartedAt *time.Time
	EndedAt   *time.Time
	Completed *bool
}

type Output struct {
	ID          string
	Label       string
	StartedAt   time.Time
	EndedAt     time.Time
	Completed   bool
	CreatedAt   time.Time
	DurationMin int
}
