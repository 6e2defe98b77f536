// Package queue provides the bounded max-heap backing the query working set.
package queue

// Item represents an item in the priority queue.
// Value-based (no pointers) for cache locality and zero allocations.
type Item[P any] struct {
	Distance float64 // Distance is the priority of the item in the queue.
	Payload  P
}

// PriorityQueue is a max-heap of Items keyed by Distance: the top element is
// the worst (farthest) of the current working set, so a full queue supports
// replace-worst in O(log n).
type PriorityQueue[P any] struct {
	items []Item[P]
}

// New initializes a new priority queue with the given initial capacity.
// The queue grows beyond the capacity as needed.
func New[P any](capacity int) *PriorityQueue[P] {
	return &PriorityQueue[P]{
		items: make([]Item[P], 0, capacity),
	}
}

// Len returns the number of elements in the priority queue.
func (pq *PriorityQueue[P]) Len() int { return len(pq.items) }

// TopItem returns the top (worst) element of the heap.
func (pq *PriorityQueue[P]) TopItem() (Item[P], bool) {
	if len(pq.items) == 0 {
		return Item[P]{}, false
	}
	return pq.items[0], true
}

// PushItem inserts an item while maintaining the heap invariant.
func (pq *PriorityQueue[P]) PushItem(item Item[P]) {
	pq.items = append(pq.items, item)
	pq.siftUp(len(pq.items) - 1)
}

// PopItem removes and returns the top element while maintaining the heap
// invariant.
func (pq *PriorityQueue[P]) PopItem() (Item[P], bool) {
	n := len(pq.items)
	if n == 0 {
		return Item[P]{}, false
	}
	root := pq.items[0]
	last := pq.items[n-1]
	pq.items[n-1] = Item[P]{}
	pq.items = pq.items[:n-1]
	if n-1 > 0 {
		pq.items[0] = last
		pq.siftDown(0)
	}
	return root, true
}

// Reset clears the priority queue for reuse, retaining the backing storage.
func (pq *PriorityQueue[P]) Reset() {
	clear(pq.items)
	pq.items = pq.items[:0]
}

func (pq *PriorityQueue[P]) less(i, j int) bool {
	return pq.items[i].Distance > pq.items[j].Distance
}

func (pq *PriorityQueue[P]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !pq.less(i, p) {
			return
		}
		pq.items[i], pq.items[p] = pq.items[p], pq.items[i]
		i = p
	}
}

func (pq *PriorityQueue[P]) siftDown(i int) {
	n := len(pq.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		if r := l + 1; r < n && pq.less(r, l) {
			best = r
		}
		if !pq.less(best, i) {
			return
		}
		pq.items[i], pq.items[best] = pq.items[best], pq.items[i]
		i = best
	}
}
