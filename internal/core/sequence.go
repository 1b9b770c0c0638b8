package core

import "sort"

// SortRows returns a copy of rows in ascending Key order. Equal keys keep
// their input order, and rows with an unreadable date (Key 0) come first.
// Line numbers and certificate sequences are assigned in this order.
func SortRows(rows []CanonicalRow) []CanonicalRow {
	sorted := make([]CanonicalRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})
	return sorted
}

// Sequence returns the 1-based position of the row at index i of a sorted batch.
func Sequence(i int) int {
	return i + 1
}
