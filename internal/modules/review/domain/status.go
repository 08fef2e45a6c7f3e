package domain

type Status string

const (
	StatusNotTracking     Status = "notTracking"
	StatusMastered        Status = "mastered"
	StatusReviewDue       Status = "reviewDue"
	StatusReviewScheduled Status = "reviewScheduled"
)

// Statuses lists every bucket in board order.
var Statuses = []Status{StatusReviewDue, StatusReviewScheduled, StatusMastered, StatusNotTracking}

func (s Status) Label() string {
	switch s {
	case StatusNotTracking:
		return "Not tracking"
	case StatusMastered:
		return "Mastered"
	case StatusReviewDue:
		return "Review due"
	case StatusReviewScheduled:
		return "Scheduled"
	default:
		return string(s)
	}
}

// Classify buckets a record for display. Untracked records win over every
// other state.
func Classify(r Record, schedule Schedule, now Timestamp) Status {
	if !r.Tracking {
		return StatusNotTracking
	}
	return Progress(r, schedule, now)
}

// Progress is Classify without the tracking check.
func Progress(r Record, schedule Schedule, now Timestamp) Status {
	switch {
	case r.Mastered(schedule):
		return StatusMastered
	case r.NextReview <= now:
		return StatusReviewDue
	default:
		return StatusReviewScheduled
	}
}
