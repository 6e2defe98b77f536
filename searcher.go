package kdgo

import (
	"math"

	"github.com/hupe1980/kdgo/internal/arena"
	"github.com/hupe1980/kdgo/internal/queue"
)

// Searcher runs repeated queries against one tree while reusing its
// traversal stack, candidate heap, and scratch buffers across calls. A
// Searcher is not safe for concurrent use; give each goroutine its own.
//
// Searcher results are only valid while the tree is unmutated. After an
// insertion, existing Searchers remain usable; their next query simply
// observes the grown tree.
type Searcher[P any] struct {
	tree    *KDTree[P]
	stack   []uint32
	heap    *queue.PriorityQueue[P]
	scratch []float64
}

// Searcher returns a new reusable query context bound to the tree.
func (t *KDTree[P]) Searcher() *Searcher[P] {
	return newSearcher(t)
}

func newSearcher[P any](tree *KDTree[P]) *Searcher[P] {
	return &Searcher[P]{
		tree:    tree,
		stack:   make([]uint32, 0, 64),
		heap:    queue.New[P](tree.bucketSize),
		scratch: make([]float64, tree.dims),
	}
}

// Search returns the up-to-k nearest payloads within maxRadius of the query
// point, ordered by ascending distance. Pass an infinite maxRadius for a
// pure KNN query, or k equal to the tree size for a pure ball query.
func (s *Searcher[P]) Search(point []float64, maxRadius float64, k int) ([]Result[P], error) {
	if len(point) != s.tree.dims {
		return nil, &ErrDimensionMismatch{Expected: s.tree.dims, Actual: len(point)}
	}
	if maxRadius < 0 {
		return nil, ErrInvalidRadius
	}
	if k < 0 {
		return nil, ErrInvalidK
	}
	return s.collect(point, maxRadius, k), nil
}

// collect is the shared branch-and-bound traversal behind every query kind.
// It returns the up-to-k nearest entries within maxRadius, ascending.
func (s *Searcher[P]) collect(point []float64, maxRadius float64, k int) []Result[P] {
	t := s.tree
	if size := t.Size(); k > size {
		k = size
	}
	if k == 0 {
		return nil
	}

	s.heap.Reset()
	s.stack = append(s.stack[:0], arena.Root)

	for len(s.stack) > 0 {
		h := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]

		n := t.arena.Node(h)

		lb := n.MinDistance(point, s.scratch, t.dist)
		if lb > maxRadius {
			continue
		}
		if s.heap.Len() == k {
			if worst, _ := s.heap.TopItem(); worst.Distance <= lb {
				continue
			}
		}

		if n.IsLeaf() {
			for i := range n.Entries {
				e := &n.Entries[i]
				d := t.dist(point, e.Point)
				if d > maxRadius {
					continue
				}
				if s.heap.Len() < k {
					s.heap.PushItem(queue.Item[P]{Distance: d, Payload: e.Payload})
				} else if worst, _ := s.heap.TopItem(); d < worst.Distance {
					s.heap.PopItem()
					s.heap.PushItem(queue.Item[P]{Distance: d, Payload: e.Payload})
				}
			}
			continue
		}

		near, far := n.Left, n.Right
		if point[n.SplitDim] >= n.SplitValue {
			near, far = far, near
		}
		s.stack = append(s.stack, far, near)
	}

	results := make([]Result[P], s.heap.Len())
	for i := len(results) - 1; i >= 0; i-- {
		item, _ := s.heap.PopItem()
		results[i] = Result[P]{Distance: item.Distance, Payload: item.Payload}
	}
	return results
}

// best finds the single nearest entry without touching the heap. It reports
// false on an empty tree.
func (s *Searcher[P]) best(point []float64) (Result[P], bool) {
	t := s.tree
	if t.Size() == 0 {
		return Result[P]{Distance: math.Inf(1)}, false
	}

	bestDist := math.Inf(1)
	var bestPayload P

	s.stack = append(s.stack[:0], arena.Root)
	for len(s.stack) > 0 {
		h := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]

		n := t.arena.Node(h)
		if n.MinDistance(point, s.scratch, t.dist) >= bestDist {
			continue
		}

		if n.IsLeaf() {
			for i := range n.Entries {
				e := &n.Entries[i]
				if d := t.dist(point, e.Point); d < bestDist {
					bestDist = d
					bestPayload = e.Payload
				}
			}
			continue
		}

		near, far := n.Left, n.Right
		if point[n.SplitDim] >= n.SplitValue {
			near, far = far, near
		}
		s.stack = append(s.stack, far, near)
	}

	return Result[P]{Distance: bestDist, Payload: bestPayload}, true
}
