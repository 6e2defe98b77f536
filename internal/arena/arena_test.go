package arena

import (
	"math"
	"testing"

	"github.com/hupe1980/kdgo/distance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena(t *testing.T) {
	t.Run("Root exists after construction", func(t *testing.T) {
		a := New[string](2, 4)
		require.Equal(t, 1, a.Len())

		root := a.Root()
		assert.True(t, root.IsLeaf())
		assert.Equal(t, 0, root.Count)
		assert.Equal(t, []float64{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}, root.Bounds)
		assert.Equal(t, 4, cap(root.Entries))
	})

	t.Run("Add expands bounds and count", func(t *testing.T) {
		a := New[string](2, 4)
		root := a.Root()

		root.Add([]float64{1, 5}, "a")
		root.Add([]float64{3, 2}, "b")

		assert.Equal(t, 2, root.Count)
		assert.Equal(t, []float64{1, 3, 2, 5}, root.Bounds)
		assert.True(t, root.IsLeaf())
	})

	t.Run("Recycled buffer backs the next leaf", func(t *testing.T) {
		a := New[int](2, 8)

		buf := make([]Entry[int], 3, 8)
		a.Recycle(buf)

		h := a.NewLeaf()
		n := a.Node(h)
		assert.Equal(t, 0, len(n.Entries))
		assert.Equal(t, 8, cap(n.Entries))
		assert.Same(t, &buf[:1][0], &n.Entries[:1][0])
	})

	t.Run("Zero-capacity buffers are not pooled", func(t *testing.T) {
		a := New[int](1, 2)
		a.Recycle(nil)
		assert.Empty(t, a.freeBufs)
	})

	t.Run("Truncate rolls back appended leaves", func(t *testing.T) {
		a := New[int](1, 2)
		mark := a.Len()

		l := a.NewLeaf()
		r := a.NewLeaf()
		a.Node(l).Add([]float64{1}, 1)
		a.Node(r).Add([]float64{2}, 2)
		require.Equal(t, 3, a.Len())

		a.Truncate(mark)
		assert.Equal(t, 1, a.Len())
		// Both dropped buckets are available for reuse.
		assert.Len(t, a.freeBufs, 2)
	})
}

func TestNodeMinDistance(t *testing.T) {
	a := New[string](2, 4)
	root := a.Root()
	root.Add([]float64{1, 1}, "a")
	root.Add([]float64{3, 4}, "b")

	scratch := make([]float64, 2)

	t.Run("Outside the box", func(t *testing.T) {
		// Closest box point to (5, 0) is (3, 1).
		got := root.MinDistance([]float64{5, 0}, scratch, distance.SquaredL2)
		assert.Equal(t, 5.0, got)
	})

	t.Run("Inside the box", func(t *testing.T) {
		got := root.MinDistance([]float64{2, 2}, scratch, distance.SquaredL2)
		assert.Equal(t, 0.0, got)
	})

	t.Run("Lower bound never exceeds a member distance", func(t *testing.T) {
		q := []float64{-2, 7}
		lb := root.MinDistance(q, scratch, distance.SquaredL2)
		for _, e := range root.Entries {
			assert.LessOrEqual(t, lb, distance.SquaredL2(q, e.Point))
		}
	})
}
