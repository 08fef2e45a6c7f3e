package domain

import (
	"fmt"

	apperrors "revisit/internal/platform/errors"
)

// Record is the proficiency state of one problem.
type Record struct {
	ProblemID      int64
	Level          int
	LastSubmission Timestamp
	NextReview     Timestamp
	Tracking       bool
}

// NewRecord starts tracking a problem from its first accepted submission.
func NewRecord(problemID int64, submitted Timestamp, schedule Schedule) (Record, error) {
	next, err := schedule.NextReview(submitted, 0)
	if err != nil {
		return Record{}, err
	}
	return Record{
		ProblemID:      problemID,
		Level:          1,
		LastSubmission: submitted,
		NextReview:     next,
		Tracking:       true,
	}, nil
}

func (r Record) Validate() error {
	if r.ProblemID <= 0 {
		return fmt.Errorf("%w: problem id is required", apperrors.ErrInvalidInput)
	}
	if r.Level < 0 {
		return fmt.Errorf("%w: level must not be negative", apperrors.ErrInvalidInput)
	}
	return nil
}

func (r Record) Mastered(schedule Schedule) bool {
	return r.Level >= schedule.Len()
}

// Advance moves the record one rung up for a submission made at submitted.
// Tracking is left untouched.
func (r Record) Advance(submitted Timestamp, schedule Schedule) (Record, error) {
	if r.Mastered(schedule) {
		return Record{}, fmt.Errorf("%w: problem %d at level %d", apperrors.ErrMastered, r.ProblemID, r.Level)
	}
	next, err := schedule.NextReview(submitted, r.Level)
	if err != nil {
		return Record{}, err
	}
	r.Level++
	r.LastSubmission = submitted
	r.NextReview = next
	return r, nil
}

// Cancel stops tracking. NextReview is pinned to now.
func (r Record) Cancel(now Timestamp) Record {
	r.Tracking = false
	r.NextReview = now
	return r
}

func (r Record) Resume() Record {
	r.Tracking = true
	return r
}

// Reset drops the record back to level 0, due immediately. The last
// submission is kept so history is not lost.
func (r Record) Reset(now Timestamp) Record {
	r.Level = 0
	r.NextReview = now
	return r
}
