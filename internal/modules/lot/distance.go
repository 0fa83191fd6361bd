// README: Pure grid distance computation.
package lot

// Manhattan returns |Δrow| + |Δcol| between two grid cells.
func Manhattan(row1, col1, row2, col2 int) int {
	return abs(row1-row2) + abs(col1-col2)
}

// Distances recomputes the full distance relation between an entry point and
// the given slots. Callers replace any previous rows for the entry point with
// the result, so stale entries cannot survive a grid change.
func Distances(slots []Slot, ep EntryPoint) []SlotDistance {
	out := make([]SlotDistance, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotDistance{
			SlotID:       s.ID,
			EntryPointID: ep.ID,
			Distance:     Manhattan(s.Row, s.Col, ep.Row, ep.Col),
		})
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
