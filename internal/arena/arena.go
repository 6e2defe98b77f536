// Package arena provides the owning node store for the KD-tree.
//
// All tree structure lives in one growable slice of nodes addressed by
// integer handles; child references are handles, not pointers. Nodes are
// never freed individually, only the whole arena is discarded, so handle
// identity is stable for the lifetime of the tree. Entry buffers released by
// bucket splits are kept on a free list and handed to the next fresh leaf to
// avoid reallocation.
package arena

import (
	"math"

	"github.com/hupe1980/kdgo/distance"
)

// Root is the handle of the root node. It always exists.
const Root uint32 = 0

// Entry is a point and its caller-supplied payload, owned by exactly one
// leaf's bucket.
type Entry[P any] struct {
	Point   []float64
	Payload P
}

// Node is either a leaf (Entries populated) or an internal node
// (SplitDim/SplitValue/Left/Right populated), never both. A SplitDim equal
// to the dimension count marks a leaf.
type Node[P any] struct {
	// Count is the total number of points in this node's subtree.
	Count int

	// SplitDim is the routing axis of an internal node.
	SplitDim int

	// SplitValue routes a point to Left when point[SplitDim] < SplitValue,
	// otherwise Right.
	SplitValue float64

	Left  uint32
	Right uint32

	// Bounds holds per-dimension [min, max] pairs covering every point ever
	// inserted through this node. It only widens, never shrinks, even after
	// a split: it describes the subtree, not the local bucket.
	Bounds []float64

	// Entries is the leaf bucket.
	Entries []Entry[P]
}

// IsLeaf reports whether the node is a leaf. The sentinel is a split
// dimension equal to the dimension count.
func (n *Node[P]) IsLeaf() bool {
	return n.SplitDim*2 == len(n.Bounds)
}

// Expand widens the bounds to cover point.
func (n *Node[P]) Expand(point []float64) {
	for i, c := range point {
		if c < n.Bounds[2*i] {
			n.Bounds[2*i] = c
		}
		if c > n.Bounds[2*i+1] {
			n.Bounds[2*i+1] = c
		}
	}
}

// Add appends an entry to the leaf bucket, widening the bounds and
// incrementing the subtree count.
func (n *Node[P]) Add(point []float64, payload P) {
	n.Entries = append(n.Entries, Entry[P]{Point: point, Payload: payload})
	n.Expand(point)
	n.Count++
}

// MinDistance returns a lower bound on the metric distance from q to any
// point in the node's subtree: q is clamped into the bounds per dimension
// (into scratch, which must have len(q) elements) and measured against the
// clamped point. Must not be called on a node with zero entries.
func (n *Node[P]) MinDistance(q, scratch []float64, dist distance.Func) float64 {
	for i, c := range q {
		if lo := n.Bounds[2*i]; c < lo {
			c = lo
		} else if hi := n.Bounds[2*i+1]; c > hi {
			c = hi
		}
		scratch[i] = c
	}
	return dist(scratch, q)
}

// Arena owns the nodes of one KD-tree.
//
// It is not safe for concurrent use; the tree enforces the
// single-writer-or-readers discipline.
type Arena[P any] struct {
	dims       int
	bucketSize int
	nodes      []Node[P]
	freeBufs   [][]Entry[P]
}

// New creates an arena holding a single empty root leaf.
func New[P any](dims, bucketSize int) *Arena[P] {
	a := &Arena[P]{
		dims:       dims,
		bucketSize: bucketSize,
	}
	a.NewLeaf()
	return a
}

// Dims returns the dimension count of the arena's points.
func (a *Arena[P]) Dims() int { return a.dims }

// Len returns the number of live nodes.
func (a *Arena[P]) Len() int { return len(a.nodes) }

// Node returns the node for a handle. The pointer is invalidated by the next
// NewLeaf or Truncate call.
func (a *Arena[P]) Node(h uint32) *Node[P] { return &a.nodes[h] }

// Root returns the root node.
func (a *Arena[P]) Root() *Node[P] { return &a.nodes[Root] }

// NewLeaf appends an empty leaf with infinite-inverted bounds and returns its
// handle. The bucket reuses a recycled entry buffer when one is available,
// otherwise it is pre-reserved to the bucket-size threshold.
func (a *Arena[P]) NewLeaf() uint32 {
	bounds := make([]float64, 2*a.dims)
	for i := 0; i < a.dims; i++ {
		bounds[2*i] = math.Inf(1)
		bounds[2*i+1] = math.Inf(-1)
	}

	var bucket []Entry[P]
	if n := len(a.freeBufs); n > 0 {
		bucket = a.freeBufs[n-1]
		a.freeBufs[n-1] = nil
		a.freeBufs = a.freeBufs[:n-1]
	} else {
		bucket = make([]Entry[P], 0, a.bucketSize)
	}

	a.nodes = append(a.nodes, Node[P]{
		SplitDim: a.dims,
		Bounds:   bounds,
		Entries:  bucket,
	})
	return uint32(len(a.nodes) - 1)
}

// Recycle donates an entry buffer's backing storage to the free list. The
// buffer contents are cleared so payload references are released.
func (a *Arena[P]) Recycle(buf []Entry[P]) {
	if cap(buf) == 0 {
		return
	}
	clear(buf)
	a.freeBufs = append(a.freeBufs, buf[:0])
}

// Truncate drops every node with handle >= n, recycling their buckets. It is
// only used to roll back the freshly appended children of a failed split;
// handles of published nodes are never invalidated.
func (a *Arena[P]) Truncate(n int) {
	for i := n; i < len(a.nodes); i++ {
		a.Recycle(a.nodes[i].Entries)
		a.nodes[i] = Node[P]{}
	}
	a.nodes = a.nodes[:n]
}
