package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapAStarOrder(t *testing.T) {
	testCases := []struct {
		name string
		heap *MinHeap[AStarKey]
	}{
		{name: "binary heap", heap: NewBinaryHeap[AStarKey](CompareAStarKey)},
		{name: "4-ary heap", heap: NewFourAryHeap[AStarKey](CompareAStarKey)},
	}

	type entry struct {
		f    float64
		node Index
		g    float64
	}
	entries := []entry{
		{f: 10, node: 5, g: 4},
		{f: 7, node: 9, g: 7},
		{f: 10, node: 2, g: 4},
		{f: 10, node: 3, g: 1},
		{f: 3, node: 1, g: 0},
		{f: 7, node: 4, g: 7},
	}
	// f first, then g, then vertex id
	want := []Index{1, 4, 9, 3, 2, 5}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			for _, e := range entries {
				tt.heap.Insert(NewPriorityQueueNode(e.f, NewAStarKey(e.node, e.g)))
			}
			require.Equal(t, len(entries), tt.heap.Size())

			got := make([]Index, 0, len(entries))
			for !tt.heap.IsEmpty() {
				item, err := tt.heap.ExtractMin()
				require.NoError(t, err)
				got = append(got, item.GetItem().GetNode())
			}
			assert.Equal(t, want, got)

			_, err := tt.heap.ExtractMin()
			assert.ErrorIs(t, err, ErrEmptyHeap)
		})
	}
}

func TestCompareAStarKey(t *testing.T) {
	testCases := []struct {
		name string
		a, b AStarKey
		want int
	}{
		{name: "lower g first", a: NewAStarKey(7, 1), b: NewAStarKey(2, 3), want: -1},
		{name: "equal g, lower id first", a: NewAStarKey(2, 3), b: NewAStarKey(7, 3), want: -1},
		{name: "identical", a: NewAStarKey(2, 3), b: NewAStarKey(2, 3), want: 0},
		{name: "higher g last", a: NewAStarKey(1, 5), b: NewAStarKey(9, 2), want: 1},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareAStarKey(tt.a, tt.b))
		})
	}
}
