package domain

import "time"

// Todo is one checklist item. ID is client-supplied and stable; Position is
// the zero-based display order, contiguous per owner ({0..N-1}, no gaps or
// duplicates) after every completed operation.
type Todo struct {
	OwnerID         string
	ID              string
	Text            string
	Completed       bool
	RecordedInStats bool
	Position        int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Patch carries the fields of a partial update; nil means "leave as is".
// Position is deliberately absent: single-item patches never reorder.
type Patch struct {
	Text            *string
	Completed       *bool
	RecordedInStats *bool
}

func (t *Todo) Apply(p Patch) {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.RecordedInStats != nil {
		t.RecordedInStats = *p.RecordedInStats
	}
}
