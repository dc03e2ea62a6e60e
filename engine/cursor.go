package engine

import "netshow/model"

// NextCursor decides where the cursor lands after a reconciliation.
// If the focused row's key persists, the cursor follows it to its new
// index. If it disappeared, the cursor moves to the nearest surviving row
// at the same or a lower index: never negative, never past the end, and
// row 0 only when nothing above the cursor survived or the list is empty.
func NextCursor(prev, next []model.ViewRow, cursor int) int {
	if len(next) == 0 {
		return 0
	}
	if len(prev) == 0 {
		return clamp(cursor, len(next))
	}
	cursor = clamp(cursor, len(prev))

	index := make(map[string]int, len(next))
	for i, r := range next {
		index[r.Record.Key] = i
	}

	if i, ok := index[prev[cursor].Record.Key]; ok {
		return i
	}
	// Walk upward through the previous sequence for the closest survivor.
	for p := cursor - 1; p >= 0; p-- {
		if i, ok := index[prev[p].Record.Key]; ok {
			return i
		}
	}
	return clamp(cursor, len(next))
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
