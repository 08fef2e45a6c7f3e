package dto

type TagOutput struct {
	Name string
	Slug string
}

type ProblemOutput struct {
	ID         int64
	QuestionID string
	Title      string
	Slug       string
	Difficulty string
	URL        string
	Tags       []TagOutput
}

type DetailOutput struct {
	QuestionID string
	Title      string
	Slug       string
	Difficulty string
	Tags       []TagOutput
}

type FetchDetailsInput struct {
	Slugs []string
}

// FetchDetailsOutput carries the details that resolved, keyed by slug, and
// the slugs the catalog could not resolve.
type FetchDetailsOutput struct {
	Details map[string]DetailOutput
	Missing []string
}

type ImportInput struct {
	Detail DetailOutput
}
