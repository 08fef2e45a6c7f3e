package usecase

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"revisit/internal/modules/review/domain"
)

// TimeAgo renders a past submission relative to now, e.g. "3 days ago".
func TimeAgo(ts, now domain.Timestamp) string {
	if ts <= 0 {
		return "never"
	}
	return humanize.RelTime(ts.Time(), now.Time(), "ago", "from now")
}

// TimeLeft renders the wait until a review. Anything not in the future is
// "Due now".
func TimeLeft(ts, now domain.Timestamp) string {
	if ts <= now {
		return "Due now"
	}
	return humanize.RelTime(now.Time(), ts.Time(), "left", "overdue")
}

func formatDelay(d time.Duration) string {
	const day = 24 * time.Hour
	switch {
	case d == day:
		return "1 day"
	case d%day == 0:
		return fmt.Sprintf("%d days", d/day)
	default:
		return d.String()
	}
}
