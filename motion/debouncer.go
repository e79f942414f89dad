package motion

import "time"

// Debouncer owns the trigger guard of one body
// Every rule queries the same Debouncer, so at most one trigger commits per window
type Debouncer struct {
	window time.Duration
	last   time.Time
	armed  bool // false until the first commit
}

// NewDebouncer creates a guard with the given minimum spacing
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Allow reports whether a trigger at now would pass, without recording it
// Strict: exactly window after the last trigger is still suppressed
func (d *Debouncer) Allow(now time.Time) bool {
	return !d.armed || now.Sub(d.last) > d.window
}

// Commit records a trigger at now
func (d *Debouncer) Commit(now time.Time) {
	d.last = now
	d.armed = true
}

// TryFire checks and commits in one step
func (d *Debouncer) TryFire(now time.Time) bool {
	if !d.Allow(now) {
		return false
	}
	d.Commit(now)
	return true
}

// Last returns the most recent trigger time
func (d *Debouncer) Last() (time.Time, bool) {
	return d.last, d.armed
}

// Reset forgets the last trigger
func (d *Debouncer) Reset() {
	d.last = time.Time{}
	d.armed = false
}
