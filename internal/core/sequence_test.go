package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortRows_Stable(t *testing.T) {
	rows := []CanonicalRow{
		{NumComp: "a", Key: SortKey("15/03/2025")},
		{NumComp: "b", Key: SortKey("01/03/2025")},
		{NumComp: "c", Key: SortKey("15/03/2025")},
		{NumComp: "d", Key: SortKey("not a date")},
		{NumComp: "e", Key: SortKey("01/03/2025")},
	}

	sorted := SortRows(rows)
	require.Len(t, sorted, len(rows))

	var order []string
	for i, r := range sorted {
		order = append(order, r.NumComp)
		if i > 0 {
			assert.LessOrEqual(t, sorted[i-1].Key, r.Key)
		}
	}
	assert.Equal(t, []string{"d", "b", "e", "a", "c"}, order)
}

func TestSortRows_DoesNotMutateInput(t *testing.T) {
	rows := []CanonicalRow{{NumComp: "late", Key: 2}, {NumComp: "early", Key: 1}}
	_ = SortRows(rows)
	assert.Equal(t, "late", rows[0].NumComp)
}

func TestSortRows_Empty(t *testing.T) {
	assert.Empty(t, SortRows(nil))
}

func TestSequence(t *testing.T) {
	assert.Equal(t, 1, Sequence(0))
	assert.Equal(t, 12, Sequence(11))
}
