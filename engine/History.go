package engine

const DefaultHistoryLimit = 100

// History keeps sheet snapshots for undo and redo. The undo stack holds the
// states before each recorded change, oldest dropped first once limit is hit.
type History struct {
	undo  []*Sheet
	redo  []*Sheet
	limit int
}

// NewHistory returns a history of at most limit steps; zero or less disables it
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Record saves the state before a change. Any redo branch is forgotten.
func (h *History) Record(before *Sheet) {
	if h.limit <= 0 {
		return
	}

	if len(h.undo) == h.limit {
		h.undo[0] = nil
		h.undo = h.undo[1:]
	}
	h.undo = append(h.undo, before)
	h.redo = nil
}

// Undo puts the sheet back to the last recorded state. Returns false when
// there is nothing to undo.
func (h *History) Undo(sheet *Sheet) bool {
	previous, ok := pop(&h.undo)
	if !ok {
		return false
	}

	h.redo = append(h.redo, sheet.Clone())
	sheet.Restore(previous)
	return true
}

func (h *History) Redo(sheet *Sheet) bool {
	next, ok := pop(&h.redo)
	if !ok {
		return false
	}

	h.undo = append(h.undo, sheet.Clone())
	sheet.Restore(next)
	return true
}

func (h *History) UndoLen() int {
	return len(h.undo)
}

func (h *History) RedoLen() int {
	return len(h.redo)
}

func pop(stack *[]*Sheet) (*Sheet, bool) {
	if len(*stack) == 0 {
		return nil, false
	}

	top := (*stack)[len(*stack)-1]
	(*stack)[len(*stack)-1] = nil
	*stack = (*stack)[:len(*stack)-1]

	return top, true
}
