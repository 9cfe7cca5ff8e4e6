package dto

type ItemInput struct {
	ID              string
	Text            string
	Completed       bool
	RecordedInStats bool
}

type PatchInput struct {
	Text            *string
	Completed       *bool
	RecordedInStats *bool
}

type Output struct {
	ID              string
	Text            string
	Completed       bool
	RecordedInStats bool
	Position        int
}
