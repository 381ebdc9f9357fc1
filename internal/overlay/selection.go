package overlay

// NoSelection is the selection index of an empty result set.
const NoSelection = -1

// Direction is a navigation step through the result set.
type Direction int

const (
	Up Direction = iota
	Down
)

// Selection tracks the highlighted row of a result set of a given size.
// It never wraps and never selects anything in an empty set.
type Selection struct {
	index int
	size  int
}

// NewSelection returns a selection over an empty result set.
func NewSelection() Selection {
	return Selection{index: NoSelection}
}

// Reset points the selection at the first of n rows, or at nothing when n is 0.
func (s *Selection) Reset(n int) {
	s.size = n
	if n > 0 {
		s.index = 0
		return
	}
	s.size = 0
	s.index = NoSelection
}

// MoveDown selects the next row, stopping at the last one.
func (s *Selection) MoveDown() {
	if s.index == NoSelection {
		return
	}
	if s.index < s.size-1 {
		s.index++
	}
}

// MoveUp selects the previous row, stopping at the first one.
func (s *Selection) MoveUp() {
	if s.index == NoSelection {
		return
	}
	if s.index > 0 {
		s.index--
	}
}

// Move steps in dir.
func (s *Selection) Move(dir Direction) {
	switch dir {
	case Up:
		s.MoveUp()
	case Down:
		s.MoveDown()
	}
}

// Index returns the selected row or NoSelection.
func (s Selection) Index() int {
	return s.index
}

// Valid reports whether a row is selected.
func (s Selection) Valid() bool {
	return s.index != NoSelection
}
