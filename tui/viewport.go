// ABOUTME: Viewport manager for the scrollable file list
// ABOUTME: Implements minimal-scroll behavior keeping the highlight visible

package tui

// Viewport maps the highlighted row onto a scroll offset for the visible
// window. Minimal-scroll rule: scroll up just enough when the highlight
// moves above the window, down just enough when it moves below, and not at
// all while it stays visible.
type Viewport struct {
	start int // First visible row index
}

// Start returns the first visible row index
func (v *Viewport) Start() int {
	return v.start
}

// Update recomputes the start index so that highlight stays within the
// window of displayCount rows. Pure function of the previous start and the
// inputs; start never goes negative.
func (v *Viewport) Update(highlight, displayCount int) {
	if displayCount < 1 {
		displayCount = 1
	}

	if highlight < v.start {
		v.start = highlight
	} else if highlight >= v.start+displayCount {
		v.start = highlight - displayCount + 1
	}

	if v.start < 0 {
		v.start = 0
	}
}

// Contains reports whether row index i is inside the visible window
func (v *Viewport) Contains(i, displayCount int) bool {
	if displayCount < 1 {
		displayCount = 1
	}

	return i >= v.start && i < v.start+displayCount
}
