package domain

// ProblemRef is the review module's view of a stored problem.
type ProblemRef struct {
	ID         int64
	QuestionID string
	Title      string
	Slug       string
	Difficulty string
	URL        string
	Tags       []string
}

type TagDraft struct {
	Name string
	Slug string
}

// ProblemDraft is catalog metadata for a problem that is not stored yet.
type ProblemDraft struct {
	QuestionID string
	Title      string
	Slug       string
	Difficulty string
	Tags       []TagDraft
}
