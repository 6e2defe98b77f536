// Package distance provides the distance metrics used to order spatial
// queries.
//
// Both built-ins are valid for ordering even though SquaredL2 skips the
// square root: callers must not assume the triangle inequality holds on the
// raw value, only that it is monotonic with true distance.
package distance

import "fmt"

// Func computes a scalar dissimilarity between two equal-length points.
// Assumes points are the same length (caller's responsibility).
// Implementations must be commutative, return zero iff the points are equal
// under the metric, and have no side effects.
type Func func(a, b []float64) float64

// L1 calculates the sum of absolute coordinate differences (Manhattan
// distance) between two points.
func L1(a, b []float64) float64 {
	var dist float64
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		dist += d
	}
	return dist
}

// SquaredL2 calculates the squared L2 (Euclidean) distance between two
// points. The square root is omitted; the result orders identically.
func SquaredL2(a, b []float64) float64 {
	var dist float64
	for i := range a {
		d := a[i] - b[i]
		dist += d * d
	}
	return dist
}

// Metric represents the distance metric used for point comparison.
type Metric int

const (
	MetricSquaredL2 Metric = iota
	MetricL1
)

func (m Metric) String() string {
	switch m {
	case MetricSquaredL2:
		return "SquaredL2"
	case MetricL1:
		return "L1"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricSquaredL2:
		return SquaredL2, nil
	case MetricL1:
		return L1, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
