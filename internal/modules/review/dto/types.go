package dto

type SyncInput struct {
	// Slug limits the run to one problem's own submission history.
	Slug string
}

type ChangeOutput struct {
	Slug      string
	Kind      string
	FromLevel int
	ToLevel   int
}

// SyncOutput reports a reconciliation run. Success is false when the run
// was rolled back or never started; Error then carries the reason.
type SyncOutput struct {
	Success    bool
	Error      string
	Created    int
	Advanced   int
	Unresolved []string
	Changes    []ChangeOutput
}

type EntryOutput struct {
	ProblemID      int64
	QuestionID     string
	Title          string
	Slug           string
	Difficulty     string
	URL            string
	Tags           []string
	Level          int
	MaxLevel       int
	Tracking       bool
	Status         string
	LastSubmission string
	NextReview     string
	LastSubmitted  string
	NextReviewIn   string
}

type BoardOutput struct {
	ReviewDue       []EntryOutput
	ReviewScheduled []EntryOutput
	Mastered        []EntryOutput
	NotTracking     []EntryOutput
}

type TrackInput struct {
	Slug string
}

type SeedInput struct {
	Path string
}

type SeedOutput struct {
	Problems int
}

type ScheduleStepOutput struct {
	Level int
	Delay string
}
