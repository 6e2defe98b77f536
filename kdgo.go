// Package kdgo provides a dynamic, in-memory KD-tree for exact spatial
// search over fixed-dimension points.
//
// The tree supports point insertion, exact k-nearest-neighbor search, radius
// ("ball") search, a capacity-limited hybrid of the two, and repeated
// low-overhead queries through a reusable Searcher. It targets workloads
// with millions of points and millions of queries where per-query allocation
// and pointer chasing dominate cost: all tree structure lives in a node
// arena addressed by integer handles, leaves hold bucketed entries, and
// queries prune subtrees by bounding-box lower bounds.
//
// # Quick Start
//
//	ctx := context.Background()
//	tree, err := kdgo.New[string](2)
//	if err != nil {
//	    panic(err)
//	}
//	tree.Insert(ctx, []float64{1, 2}, "George")
//	tree.Insert(ctx, []float64{1, 3}, "Harold")
//	tree.Insert(ctx, []float64{7, 7}, "Melvin")
//
//	nearest, _ := tree.SearchKNN(ctx, []float64{6, 6}, 2)
//	for _, r := range nearest {
//	    fmt.Println(r.Payload, r.Distance)
//	}
//
// # Bulk Loading
//
// When many points are added before the first query, prefer InsertDeferred
// (or BatchInsert) followed by one SplitOutstanding call. This reduces
// temporaries and produces a better balanced tree than splitting eagerly
// during the load.
//
// # Tuning
//
// Set the bucket size to roughly twice the K of a typical KNN query; 32 is a
// good starting point, and more dimensions favor larger buckets. The tree
// adapts to the axis-parallel dimensionality of the data: a dimension with a
// much larger scale than the others attracts most of the splitting.
//
// Heavily duplicated point locations make buckets unsplittable and degrade
// search toward a linear scan within those buckets. This is a performance
// caveat, not a correctness issue; all operations still terminate.
//
// # Concurrency
//
// A KDTree performs no internal locking. Insertion requires exclusive
// access; any number of concurrent readers may query an unmutated tree, each
// with its own Searcher.
package kdgo

import (
	"context"
	"slices"
	"sync"

	"github.com/hupe1980/kdgo/distance"
	"github.com/hupe1980/kdgo/internal/arena"
)

// DefaultBucketSize is the default bucket-size threshold for leaf splits.
const DefaultBucketSize = 32

// PointWithPayload bundles a point and its payload for batch insertion.
type PointWithPayload[P any] struct {
	Point   []float64
	Payload P
}

// KDTree is a dynamic KD-tree over D-dimensional points with opaque
// payloads. Payloads are stored verbatim and never interpreted.
type KDTree[P any] struct {
	dims       int
	bucketSize int
	metric     distance.Metric
	dist       distance.Func
	arena      *arena.Arena[P]
	pending    map[uint32]struct{}
	searchers  sync.Pool
	logger     *Logger
}

// New creates an empty KD-tree for points with the given dimension count.
// The dimension count is fixed for the lifetime of the tree.
func New[P any](dimensions int, optFns ...Option) (*KDTree[P], error) {
	o := applyOptions(optFns)

	if dimensions <= 0 {
		return nil, &ErrInvalidDimension{Dimension: dimensions}
	}
	if o.bucketSize <= 0 {
		return nil, &ErrInvalidBucketSize{BucketSize: o.bucketSize}
	}

	dist, err := distance.Provider(o.metric)
	if err != nil {
		return nil, err
	}

	t := &KDTree[P]{
		dims:       dimensions,
		bucketSize: o.bucketSize,
		metric:     o.metric,
		dist:       dist,
		arena:      arena.New[P](dimensions, o.bucketSize),
		pending:    make(map[uint32]struct{}),
		logger:     o.logger,
	}
	t.searchers.New = func() any { return newSearcher(t) }

	return t, nil
}

// Size returns the current point count.
func (t *KDTree[P]) Size() int { return t.arena.Root().Count }

// Dimensions returns the fixed dimension count of the tree's points.
func (t *KDTree[P]) Dimensions() int { return t.dims }

// BucketSize returns the bucket-size threshold for leaf splits.
func (t *KDTree[P]) BucketSize() int { return t.bucketSize }

// Metric returns the distance metric used to order queries.
func (t *KDTree[P]) Metric() distance.Metric { return t.metric }

// Insert adds a point with its payload, splitting the reached leaf
// immediately when its entry count crosses a multiple of the bucket-size
// threshold. The point slice is copied; callers may reuse it.
func (t *KDTree[P]) Insert(ctx context.Context, point []float64, payload P) error {
	return t.insert(ctx, point, payload, true)
}

// InsertDeferred adds a point like Insert but defers any due split,
// recording the leaf for a later SplitOutstanding call. Use it when bulk
// loading many points before the first query.
func (t *KDTree[P]) InsertDeferred(ctx context.Context, point []float64, payload P) error {
	return t.insert(ctx, point, payload, false)
}

// BatchInsert adds all items with deferred splitting and drains the
// outstanding splits once at the end. On error (a dimension mismatch or a
// canceled context) insertion stops; already inserted items remain.
func (t *KDTree[P]) BatchInsert(ctx context.Context, items []PointWithPayload[P]) error {
	for _, item := range items {
		if err := t.insert(ctx, item.Point, item.Payload, false); err != nil {
			t.SplitOutstanding()
			return err
		}
	}
	t.SplitOutstanding()
	return nil
}

func (t *KDTree[P]) insert(ctx context.Context, point []float64, payload P, autosplit bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(point) != t.dims {
		return &ErrDimensionMismatch{Expected: t.dims, Actual: len(point)}
	}

	p := slices.Clone(point)

	h := arena.Root
	n := t.arena.Node(h)
	for !n.IsLeaf() {
		n.Expand(p)
		n.Count++
		if p[n.SplitDim] < n.SplitValue {
			h = n.Left
		} else {
			h = n.Right
		}
		n = t.arena.Node(h)
	}
	n.Add(p, payload)

	if n.Count >= t.bucketSize && n.Count%t.bucketSize == 0 {
		if autosplit {
			t.logger.LogSplit(ctx, h, t.splitNode(h))
		} else {
			t.pending[h] = struct{}{}
		}
	}
	return nil
}

// SplitOutstanding drains the deferred-split set. Each pending leaf is split
// if possible; freshly created children of a successful split are revisited,
// so one call fully balances a bulk-loaded subtree. Leaves that cannot
// usefully split (all points coincide, or all mass falls on one side of the
// midpoint) are left as they are. The draining order is unspecified.
func (t *KDTree[P]) SplitOutstanding() {
	if len(t.pending) == 0 {
		return
	}

	work := make([]uint32, 0, len(t.pending))
	for h := range t.pending {
		work = append(work, h)
	}
	clear(t.pending)

	var splits, failed int
	for len(work) > 0 {
		h := work[len(work)-1]
		work = work[:len(work)-1]

		n := t.arena.Node(h)
		if n.IsLeaf() {
			if n.Count < t.bucketSize {
				continue
			}
			if !t.splitNode(h) {
				failed++
				continue
			}
			splits++
			n = t.arena.Node(h)
		}
		work = append(work, n.Left, n.Right)
	}

	t.logger.LogMaintenance(context.Background(), splits, failed)
}

// splitNode converts a leaf into an internal node with two fresh leaf
// children. It reports false, leaving the node untouched, when the bucket
// cannot usefully shrink: either all points coincide in every dimension, or
// the midpoint partition would leave one side empty.
func (t *KDTree[P]) splitNode(h uint32) bool {
	n := t.arena.Node(h)

	splitDim := t.dims
	var width float64
	for i := 0; i < t.dims; i++ {
		if w := n.Bounds[2*i+1] - n.Bounds[2*i]; w > width {
			width = w
			splitDim = i
		}
	}
	if splitDim == t.dims {
		return false
	}
	splitValue := (n.Bounds[2*splitDim] + n.Bounds[2*splitDim+1]) / 2

	mark := t.arena.Len()
	left := t.arena.NewLeaf()
	right := t.arena.NewLeaf()
	n = t.arena.Node(h) // the appends may have moved the backing array

	l, r := t.arena.Node(left), t.arena.Node(right)
	for i := range n.Entries {
		e := &n.Entries[i]
		if e.Point[splitDim] < splitValue {
			l.Add(e.Point, e.Payload)
		} else {
			r.Add(e.Point, e.Payload)
		}
	}

	if l.Count == 0 || r.Count == 0 {
		t.arena.Truncate(mark)
		return false
	}

	t.arena.Recycle(n.Entries)
	n.Entries = nil
	n.SplitDim = splitDim
	n.SplitValue = splitValue
	n.Left = left
	n.Right = right
	return true
}

// TreeStats describes the current shape of the tree.
type TreeStats struct {
	Dimensions    int
	BucketSize    int
	Nodes         int
	Leaves        int
	Entries       int
	PendingSplits int
	MaxDepth      int
}

// Stats returns statistics about the tree's current shape.
func (t *KDTree[P]) Stats() TreeStats {
	stats := TreeStats{
		Dimensions:    t.dims,
		BucketSize:    t.bucketSize,
		PendingSplits: len(t.pending),
	}

	type frame struct {
		h     uint32
		depth int
	}
	stack := []frame{{h: arena.Root, depth: 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		stats.Nodes++
		if f.depth > stats.MaxDepth {
			stats.MaxDepth = f.depth
		}

		n := t.arena.Node(f.h)
		if n.IsLeaf() {
			stats.Leaves++
			stats.Entries += len(n.Entries)
			continue
		}
		stack = append(stack, frame{h: n.Left, depth: f.depth + 1}, frame{h: n.Right, depth: f.depth + 1})
	}
	return stats
}
