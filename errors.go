package kdgo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is negative. A k larger than the index
	// size is not an error; it is silently clamped.
	ErrInvalidK = errors.New("k must be non-negative")

	// ErrInvalidRadius is returned when a search radius is negative.
	ErrInvalidRadius = errors.New("radius must be non-negative")
)

// ErrDimensionMismatch indicates a point/query dimensionality mismatch.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidDimension indicates an invalid configured dimension count.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// ErrInvalidBucketSize indicates an invalid configured bucket-size threshold.
type ErrInvalidBucketSize struct {
	BucketSize int
}

func (e *ErrInvalidBucketSize) Error() string {
	return fmt.Sprintf("invalid bucket size: %d", e.BucketSize)
}
