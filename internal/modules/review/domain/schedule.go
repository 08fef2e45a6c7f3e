package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "revisit/internal/platform/errors"
)

// Timestamp is an instant in epoch milliseconds. Its String form is the
// numeric string persisted by the proficiency store.
type Timestamp int64

func TimestampOf(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

func ParseTimestamp(raw string) (Timestamp, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: timestamp %q: %v", apperrors.ErrInvalidInput, raw, err)
	}
	return Timestamp(v), nil
}

func (t Timestamp) String() string {
	return strconv.FormatInt(int64(t), 10)
}

func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t)).UTC()
}

func (t Timestamp) Add(d time.Duration) Timestamp {
	return t + Timestamp(d.Milliseconds())
}

// Schedule is the forgetting curve: rung i is the delay between a
// submission made at level i and the next review.
type Schedule struct {
	delays []time.Duration
}

func NewSchedule(delays []time.Duration) (Schedule, error) {
	if len(delays) == 0 {
		return Schedule{}, fmt.Errorf("%w: schedule must have at least one rung", apperrors.ErrInvalidInput)
	}
	for i, d := range delays {
		if d <= 0 {
			return Schedule{}, fmt.Errorf("%w: schedule rung %d must be positive, got %s", apperrors.ErrInvalidInput, i, d)
		}
	}
	return Schedule{delays: append([]time.Duration(nil), delays...)}, nil
}

// DefaultSchedule reviews after 1, 2, 4, 7 and 15 days.
func DefaultSchedule() Schedule {
	const day = 24 * time.Hour
	return Schedule{delays: []time.Duration{1 * day, 2 * day, 4 * day, 7 * day, 15 * day}}
}

// Len is the number of rungs; a record at this level or above is mastered.
func (s Schedule) Len() int {
	return len(s.delays)
}

func (s Schedule) Delay(level int) (time.Duration, error) {
	if level < 0 || level >= len(s.delays) {
		return 0, fmt.Errorf("%w: level %d, schedule has %d rungs", apperrors.ErrLevelOutOfRange, level, len(s.delays))
	}
	return s.delays[level], nil
}

func (s Schedule) Delays() []time.Duration {
	return append([]time.Duration(nil), s.delays...)
}

func (s Schedule) NextReview(last Timestamp, level int) (Timestamp, error) {
	d, err := s.Delay(level)
	if err != nil {
		return 0, err
	}
	return last.Add(d), nil
}
