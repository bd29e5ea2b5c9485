package datastructure

import (
	"cmp"
	"errors"
)

var (
	ErrEmptyHeap = errors.New("heap is empty")
)

// AStarKey is the frontier entry of an A* search: vertex plus its cost-so-far g.
type AStarKey struct {
	node Index
	g    float64
}

func NewAStarKey(node Index, g float64) AStarKey {
	return AStarKey{node: node, g: g}
}

func (k AStarKey) GetNode() Index {
	return k.node
}

func (k AStarKey) GetG() float64 {
	return k.g
}

// CompareAStarKey. lower g first (closer to completion), then lower vertex id.
func CompareAStarKey(a, b AStarKey) int {
	if c := cmp.Compare(a.g, b.g); c != 0 {
		return c
	}
	return cmp.Compare(a.node, b.node)
}

type PriorityQueueNode[T any] struct {
	rank    float64
	item    T
	itemPos int
}

func (p *PriorityQueueNode[T]) GetItem() T {
	return p.item
}

func (p *PriorityQueueNode[T]) GetRank() float64 {
	return p.rank
}

func (p *PriorityQueueNode[T]) SetPos(i int) {
	p.itemPos = i
}

func (p *PriorityQueueNode[T]) GetPos() int {
	return p.itemPos
}

func NewPriorityQueueNode[T any](rank float64, item T) *PriorityQueueNode[T] {
	return &PriorityQueueNode[T]{rank: rank, item: item}
}

// MinHeap d-ary heap priorityqueue. entries with equal rank are ordered by tieBreak.
type MinHeap[T any] struct {
	heap     []*PriorityQueueNode[T]
	d        int
	tieBreak func(a, b T) int
}

func NewBinaryHeap[T any](tieBreak func(a, b T) int) *MinHeap[T] {
	return NewdAryHeap[T](2, tieBreak)
}

func NewFourAryHeap[T any](tieBreak func(a, b T) int) *MinHeap[T] {
	return NewdAryHeap[T](4, tieBreak)
}

func NewdAryHeap[T any](d int, tieBreak func(a, b T) int) *MinHeap[T] {
	return &MinHeap[T]{
		heap:     make([]*PriorityQueueNode[T], 0),
		d:        d,
		tieBreak: tieBreak,
	}
}

func (h *MinHeap[T]) Preallocate(maxSearchSize int) {
	h.heap = make([]*PriorityQueueNode[T], 0, maxSearchSize)
}

func (h *MinHeap[T]) less(i, j int) bool {
	a, b := h.heap[i], h.heap[j]
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	if h.tieBreak == nil {
		return false
	}
	return h.tieBreak(a.item, b.item) < 0
}

// parent get index dari parent
func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / h.d
}

// heapifyUp mempertahankan heap property. check apakah parent dari index lebih besar kalau iya swap, then recursive ke parent.  O(logN) tree height.
func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && h.less(index, h.parent(index)) {
		h.swap(index, h.parent(index))
		index = h.parent(index)
	}
}

// heapifyDown mempertahankan heap property. check apakah nilai salah satu children dari index lebih kecil kalau iya swap, then recursive ke children yang kecil tadi.  O(logN) tree height.
func (h *MinHeap[T]) heapifyDown(index int) {
	for {
		leftMostChild := index*h.d + 1
		if leftMostChild >= len(h.heap) {
			return
		}

		sentinel := min(leftMostChild+h.d, len(h.heap))

		smallest := leftMostChild
		for i := leftMostChild + 1; i < sentinel; i++ {
			if h.less(i, smallest) {
				smallest = i
			}
		}

		if !h.less(smallest, index) {
			return
		}
		h.swap(index, smallest)
		index = smallest
	}
}

func (h *MinHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]

	h.heap[i].SetPos(i)
	h.heap[j].SetPos(j)
}

func (h *MinHeap[T]) IsEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

// insert item baru
func (h *MinHeap[T]) Insert(key *PriorityQueueNode[T]) {
	h.heap = append(h.heap, key)
	index := h.Size() - 1
	key.SetPos(index)
	h.heapifyUp(index)
}

// ExtractMin ambil nilai minimum dari min-heap (index 0) & pop dari heap. O(logN), heapifyDown(0) O(logN)
func (h *MinHeap[T]) ExtractMin() (*PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return nil, ErrEmptyHeap
	}
	root := h.heap[0]

	h.swap(0, h.Size()-1)

	h.heap = h.heap[:h.Size()-1]
	root.SetPos(-1)
	if len(h.heap) > 0 {
		h.heapifyDown(0)
	}

	return root, nil
}
