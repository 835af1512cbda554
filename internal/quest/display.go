package quest

import "github.com/kayz/questgen/internal/roman"

// DefaultDisplayName builds "&e<category display> <roman sort order>".
func DefaultDisplayName(categoryDisplay string, sortOrder int) string {
	return displayNameMarker + categoryDisplay + " " + roman.ToRoman(sortOrder)
}

// DisplayName returns the current display name.
func (q *Quest) DisplayName() string { return q.displayName }

// SetDisplayName sets the display name directly. In auto mode the value is
// overwritten by the next sort order or category display change.
func (q *Quest) SetDisplayName(name string) {
	q.displayName = name
}

// DisplayNameAuto reports whether the display name follows the sort order.
func (q *Quest) DisplayNameAuto() bool { return q.displayNameAuto }

// SetDisplayNameAuto toggles automatic display names. Turning it on
// recomputes the name immediately.
func (q *Quest) SetDisplayNameAuto(auto bool) {
	q.displayNameAuto = auto
	q.refreshDisplayName()
}

func (q *Quest) refreshDisplayName() {
	if !q.displayNameAuto {
		return
	}
	q.displayName = DefaultDisplayName(q.categoryDisplay, q.sortOrder)
}
