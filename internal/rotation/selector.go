package rotation

import "time"

// Select returns the currently-or-next active entry: the first entry in
// feed order whose window has not yet closed. Overlapping windows resolve
// by feed order, not by comparing start times.
func Select(feed Feed, now time.Time) (Entry, error) {
	for _, e := range feed {
		if e.EndTime.After(now) {
			return e, nil
		}
	}
	return Entry{}, ErrNoActiveEntry
}
