// Package debounce stabilizes a stream of raw text edits: a value is only
// committed once no further edit has arrived for a full quiet window.
package debounce

import "time"

type Debouncer struct {
	window  time.Duration
	value   string
	lastAt  time.Time
	pending bool
}

func New(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Observe records a raw edit at the given instant. An empty value cancels
// any pending commit instead of scheduling one: clearing the field must
// never commit an empty string.
func (d *Debouncer) Observe(value string, now time.Time) {
	if len(value) == 0 {
		d.pending = false
		d.value = ""
		return
	}

	d.value = value
	d.lastAt = now
	d.pending = true
}

// Flush commits the held value if the quiet window has elapsed since the
// last edit. It reports false while edits are still settling or when
// nothing is pending. A committed value is consumed; the next Flush
// reports false until a new edit arrives.
func (d *Debouncer) Flush(now time.Time) (string, bool) {
	if !d.pending {
		return "", false
	}
	if now.Sub(d.lastAt) < d.window {
		return "", false
	}

	d.pending = false
	return d.value, true
}

// Deadline reports when the pending value becomes committable. The second
// return is false when nothing is pending.
func (d *Debouncer) Deadline() (time.Time, bool) {
	if !d.pending {
		return time.Time{}, false
	}
	return d.lastAt.Add(d.window), true
}
