// Package rating implements the star-rating input control.
//
// Widget holds the state machine: a committed rating set by clicks and a
// transient hover preview. StarRating wraps a Widget with presentation
// options and renders it for the terminal.
package rating

// DefaultMaxRating is the star count used when none is configured
const DefaultMaxRating = 5

// Widget tracks the committed rating and the hover preview.
// Star indices are 0-based; ratings are 1-based with 0 meaning unrated.
type Widget struct {
	max       int
	committed int
	hover     int
	onSet     func(int)
}

// NewWidget creates a widget with max stars. max <= 0 yields a widget
// with no stars that ignores all input.
func NewWidget(max int, onSet func(int)) *Widget {
	if max < 0 {
		max = 0
	}
	return &Widget{max: max, onSet: onSet}
}

// Max returns the number of stars
func (w *Widget) Max() int { return w.max }

// Committed returns the last committed rating
func (w *Widget) Committed() int { return w.committed }

// Hovered returns the hover preview, 0 when none
func (w *Widget) Hovered() int { return w.hover }

// Display is the fill level: the hover preview if any, else the committed rating
func (w *Widget) Display() int {
	if w.hover > 0 {
		return w.hover
	}
	return w.committed
}

// Full reports whether star i is drawn filled
func (w *Widget) Full(i int) bool {
	return i >= 0 && i < w.max && w.Display() >= i+1
}

// Hover previews star i without committing
func (w *Widget) Hover(i int) {
	if i < 0 || i >= w.max {
		return
	}
	w.hover = i + 1
}

// Leave clears the hover preview
func (w *Widget) Leave() {
	w.hover = 0
}

// Click commits star i. Clicking the committed star clears the rating.
func (w *Widget) Click(i int) {
	if i < 0 || i >= w.max {
		return
	}
	if w.committed == i+1 {
		w.commit(0)
		return
	}
	w.commit(i + 1)
}

// Set commits value directly, clamped to [0, max]
func (w *Widget) Set(value int) {
	if value < 0 {
		value = 0
	}
	if value > w.max {
		value = w.max
	}
	w.commit(value)
}

func (w *Widget) commit(value int) {
	w.committed = value
	if w.onSet != nil {
		w.onSet(value)
	}
}
