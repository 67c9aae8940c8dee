package payments

import "time"

// Clock supplies the current moment so due-date arithmetic and deadline
// checks stay testable with a pinned date.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
