package engine

import (
	"testing"

	"netshow/model"
)

func rowsFor(names ...string) []model.ViewRow {
	out := make([]model.ViewRow, len(names))
	for i, n := range names {
		out[i] = model.ViewRow{Record: model.ConnectionRecord{Key: n}, Name: n}
	}
	return out
}

func TestNextCursor(t *testing.T) {
	tests := []struct {
		name   string
		prev   []string
		next   []string
		cursor int
		want   int
	}{
		{"focused key persists at same index", []string{"a", "b", "c"}, []string{"a", "b", "c"}, 1, 1},
		{"focused key follows its row", []string{"a", "b", "c"}, []string{"b", "c", "a"}, 1, 0},
		{"focused row removed, nearest lower survivor", []string{"a", "b", "c"}, []string{"a", "c"}, 1, 0},
		{"focused row removed, survivor above ignored", []string{"a", "b", "c"}, []string{"c"}, 1, 0},
		{"tail removed, clamp to end", []string{"a", "b", "c"}, []string{"a"}, 2, 0},
		{"everything replaced, same index kept", []string{"a", "b", "c"}, []string{"x", "y", "z"}, 1, 1},
		{"everything replaced, index clamped", []string{"a", "b", "c"}, []string{"x"}, 2, 0},
		{"empty next", []string{"a", "b"}, nil, 1, 0},
		{"empty prev", nil, []string{"a", "b"}, 5, 1},
		{"negative cursor", []string{"a", "b"}, []string{"a", "b"}, -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev, next := rowsFor(tt.prev...), rowsFor(tt.next...)
			got := NextCursor(prev, next, tt.cursor)
			if got != tt.want {
				t.Errorf("NextCursor(%v, %v, %d) = %d, want %d", tt.prev, tt.next, tt.cursor, got, tt.want)
			}
			if got < 0 || (len(next) > 0 && got >= len(next)) {
				t.Errorf("cursor %d out of bounds for %d rows", got, len(next))
			}
		})
	}
}
