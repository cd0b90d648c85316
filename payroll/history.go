/*
history.go - The snapshot stack behind undo

PURPOSE:
  Every mutating engine operation pushes a deep copy of the roster as it
  was immediately before the mutation. Undo pops and restores verbatim.
  There is no redo.

LIFECYCLE:
  - Created empty when the engine starts.
  - Grows by one on every mutating call (including calls that later fail
    validation; see engine.go for the discipline).
  - Shrinks only on undo.
  - Cleared on system reset.

WHY FULL COPIES:
  The roster holds mutable ledgers and maps; sharing any of them between
  a checkpoint and live state would let later mutations rewrite history.
  Roster.Clone severs every reference.

SEE ALSO:
  - roster.go: Clone
  - engine.go: checkpoint call sites
*/
package payroll

// =============================================================================
// HISTORY - LIFO roster snapshots
// =============================================================================

type History struct {
	stack []*Roster
}

// Checkpoint pushes a deep copy of the roster.
func (h *History) Checkpoint(r *Roster) {
	h.stack = append(h.stack, r.Clone())
}

// Undo pops and returns the most recent snapshot.
func (h *History) Undo() (*Roster, error) {
	if len(h.stack) == 0 {
		return nil, ErrEmptyHistory
	}
	top := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return top, nil
}

// Clear drops all snapshots.
func (h *History) Clear() {
	h.stack = nil
}

// Depth reports how many snapshots are stacked.
func (h *History) Depth() int { return len(h.stack) }
