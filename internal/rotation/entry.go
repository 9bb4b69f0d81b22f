package rotation

import (
	"errors"
	"time"
)

// ErrNoActiveEntry is returned when the feed is empty or every rotation
// window has already closed.
var ErrNoActiveEntry = errors.New("no active rotation entry")

// Weapon is one of the up to four weapons available during a rotation.
type Weapon struct {
	ID       string
	ImageURL string
}

// Entry is one rotation window from the schedule feed. Entries are
// immutable once decoded; StartTime is always before EndTime upstream.
type Entry struct {
	StartTime     time.Time
	EndTime       time.Time
	BossID        string
	StageID       string
	StageImageURL string
	Weapons       []Weapon
}

// Feed is the ordered list of upcoming rotations, earliest first.
type Feed []Entry

// SleepUntilEnd returns how long to wait until the entry's window closes,
// clamped to zero when the window has already ended.
func (e Entry) SleepUntilEnd(now time.Time) time.Duration {
	d := e.EndTime.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
