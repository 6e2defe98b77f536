package queue

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueue(t *testing.T) {
	t.Run("Pops in descending distance order", func(t *testing.T) {
		pq := New[string](8)
		pq.PushItem(Item[string]{Distance: 3, Payload: "c"})
		pq.PushItem(Item[string]{Distance: 1, Payload: "a"})
		pq.PushItem(Item[string]{Distance: 2, Payload: "b"})

		got := make([]string, 0, 3)
		for pq.Len() > 0 {
			item, ok := pq.PopItem()
			require.True(t, ok)
			got = append(got, item.Payload)
		}
		assert.Equal(t, []string{"c", "b", "a"}, got)
	})

	t.Run("TopItem is the worst element", func(t *testing.T) {
		pq := New[int](4)
		_, ok := pq.TopItem()
		assert.False(t, ok)

		pq.PushItem(Item[int]{Distance: 5, Payload: 5})
		pq.PushItem(Item[int]{Distance: 9, Payload: 9})
		pq.PushItem(Item[int]{Distance: 7, Payload: 7})

		top, ok := pq.TopItem()
		require.True(t, ok)
		assert.Equal(t, 9.0, top.Distance)
	})

	t.Run("Replace-worst keeps the k closest", func(t *testing.T) {
		const k = 16
		pq := New[float64](k)

		rng := rand.New(rand.NewSource(42))
		best := make([]float64, 0, 1024)
		for _i := 0; _i < 1024; _i++ {
			d := rng.Float64()
			best = append(best, d)

			if pq.Len() < k {
				pq.PushItem(Item[float64]{Distance: d, Payload: d})
				continue
			}
			if top, _ := pq.TopItem(); d < top.Distance {
				pq.PopItem()
				pq.PushItem(Item[float64]{Distance: d, Payload: d})
			}
		}

		require.Equal(t, k, pq.Len())
		prev := 2.0
		for pq.Len() > 0 {
			item, _ := pq.PopItem()
			assert.LessOrEqual(t, item.Distance, prev)
			prev = item.Distance
		}
	})

	t.Run("Pop on empty", func(t *testing.T) {
		pq := New[int](0)
		_, ok := pq.PopItem()
		assert.False(t, ok)
	})

	t.Run("Reset retains capacity", func(t *testing.T) {
		pq := New[int](2)
		for i := 0; i < 10; i++ {
			pq.PushItem(Item[int]{Distance: float64(i), Payload: i})
		}
		c := cap(pq.items)
		pq.Reset()
		assert.Equal(t, 0, pq.Len())
		assert.Equal(t, c, cap(pq.items))
	})
}
