package kdgo

import (
	"context"
	"math"
)

// Result is a single search hit: the payload stored with the matching point
// and its distance to the query under the tree's metric.
type Result[P any] struct {
	Distance float64
	Payload  P
}

// SearchKNN returns the k nearest payloads to the query point, ordered by
// ascending distance. Fewer than k results are returned when the tree holds
// fewer than k points; k of zero returns no results.
func (t *KDTree[P]) SearchKNN(ctx context.Context, point []float64, k int) ([]Result[P], error) {
	if err := t.checkQuery(ctx, point); err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, ErrInvalidK
	}

	s := t.acquireSearcher()
	defer t.releaseSearcher(s)

	return s.collect(point, math.Inf(1), k), nil
}

// SearchBall returns every payload within the given radius of the query
// point, ordered by ascending distance. The radius is compared against
// distances under the tree's metric, so it is a squared radius when the
// metric is SquaredL2.
func (t *KDTree[P]) SearchBall(ctx context.Context, point []float64, radius float64) ([]Result[P], error) {
	if err := t.checkQuery(ctx, point); err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, ErrInvalidRadius
	}

	s := t.acquireSearcher()
	defer t.releaseSearcher(s)

	return s.collect(point, radius, t.Size()), nil
}

// SearchCapacityLimitedBall returns the up-to-k nearest payloads within the
// given radius of the query point, ordered by ascending distance.
func (t *KDTree[P]) SearchCapacityLimitedBall(ctx context.Context, point []float64, radius float64, k int) ([]Result[P], error) {
	if err := t.checkQuery(ctx, point); err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, ErrInvalidRadius
	}
	if k < 0 {
		return nil, ErrInvalidK
	}

	s := t.acquireSearcher()
	defer t.releaseSearcher(s)

	return s.collect(point, radius, k), nil
}

// Search returns the single nearest payload to the query point. The second
// return value is false when the tree is empty; the result then carries an
// infinite distance and the payload zero value.
func (t *KDTree[P]) Search(ctx context.Context, point []float64) (Result[P], bool, error) {
	if err := t.checkQuery(ctx, point); err != nil {
		return Result[P]{Distance: math.Inf(1)}, false, err
	}

	s := t.acquireSearcher()
	defer t.releaseSearcher(s)

	r, ok := s.best(point)
	return r, ok, nil
}

func (t *KDTree[P]) checkQuery(ctx context.Context, point []float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(point) != t.dims {
		return &ErrDimensionMismatch{Expected: t.dims, Actual: len(point)}
	}
	return nil
}

func (t *KDTree[P]) acquireSearcher() *Searcher[P] {
	return t.searchers.Get().(*Searcher[P])
}

func (t *KDTree[P]) releaseSearcher(s *Searcher[P]) {
	t.searchers.Put(s)
}
