package domain

import "time"

// Window half-open time interval [Start, End)
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow creates a window
func NewWindow(start, end time.Time) Window {
	return Window{Start: start, End: end}
}

// IsValid returns true if the window is non-empty
func (w Window) IsValid() bool {
	return !w.Start.IsZero() && !w.End.IsZero() && w.End.After(w.Start)
}

// Duration returns the window length
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Overlaps returns true if two windows share at least one instant.
// A window ending exactly when another starts does not overlap it
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

// Contains returns true if t lies within the window
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// CountConflicts returns how many existing windows overlap the candidate
func CountConflicts(existing []Window, candidate Window) int {
	count := 0
	for _, w := range existing {
		if w.Overlaps(candidate) {
			count++
		}
	}
	return count
}
