package domain

import (
	"math"
	"strings"
	"time"
)

const (
	// DefaultLabel replaces a blank or whitespace-only session label.
	DefaultLabel = "Focus session"

	// DefaultFocusMinutes is the canonical focus-interval length used when
	// no end timestamp is supplied.
	DefaultFocusMinutes = 25
)

type Session struct {
	ID        string
	OwnerID   string
	Label     string
	StartedAt time.Time
	EndedAt   time.Time
	Completed bool
	CreatedAt time.Time
}

// DurationMin is derived, never stored: whole minutes between start and
// end, rounded. An end before start clamps to 0 rather than going negative.
func (s Session) DurationMin() int {
	minutes := int(math.Round(s.EndedAt.Sub(s.StartedAt).Seconds() / 60))
	if minutes < 0 {
		return 0
	}
	return minutes
}

// Patch carries the fields of a partial update; nil means "leave as is".
type Patch struct {
	Label     *string
	StartedAt *time.Time
	EndedAt   *time.Time
	Completed *bool
}

func (s *Session) Apply(p Patch) {
	if p.Label != nil {
		s.Label = NormalizeLabel(*p.Label)
	}
	if p.StartedAt != nil {
		s.StartedAt = p.StartedAt.UTC()
	}
	if p.EndedAt != nil {
		s.EndedAt = p.EndedAt.UTC()
	}
	if p.Completed != nil {
		s.Completed = *p.Completed
	}
}

func NormalizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return DefaultLabel
	}
	return label
}
