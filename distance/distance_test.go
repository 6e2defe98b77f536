package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestL1(t *testing.T) {
	t.Run("Known values", func(t *testing.T) {
		assert.Equal(t, 0.0, L1([]float64{1, 2, 3}, []float64{1, 2, 3}))
		assert.Equal(t, 6.0, L1([]float64{1, 2, 3}, []float64{2, 4, 6}))
		assert.Equal(t, 6.0, L1([]float64{2, 4, 6}, []float64{1, 2, 3}))
	})

	t.Run("Negative coordinates", func(t *testing.T) {
		assert.Equal(t, 8.0, L1([]float64{-1, -3}, []float64{3, 1}))
	})
}

func TestSquaredL2(t *testing.T) {
	t.Run("Known values", func(t *testing.T) {
		assert.Equal(t, 0.0, SquaredL2([]float64{1, 2, 3}, []float64{1, 2, 3}))
		assert.Equal(t, 14.0, SquaredL2([]float64{1, 2, 3}, []float64{2, 4, 6}))
		assert.Equal(t, 14.0, SquaredL2([]float64{2, 4, 6}, []float64{1, 2, 3}))
	})

	t.Run("Single dimension", func(t *testing.T) {
		assert.Equal(t, 25.0, SquaredL2([]float64{-2}, []float64{3}))
	})
}

func TestMetricString(t *testing.T) {
	assert.Equal(t, "SquaredL2", MetricSquaredL2.String())
	assert.Equal(t, "L1", MetricL1.String())
	assert.Equal(t, "Unknown(42)", Metric(42).String())
}

func TestProvider(t *testing.T) {
	t.Run("SquaredL2", func(t *testing.T) {
		fn, err := Provider(MetricSquaredL2)
		require.NoError(t, err)
		assert.Equal(t, 14.0, fn([]float64{1, 2, 3}, []float64{2, 4, 6}))
	})

	t.Run("L1", func(t *testing.T) {
		fn, err := Provider(MetricL1)
		require.NoError(t, err)
		assert.Equal(t, 6.0, fn([]float64{1, 2, 3}, []float64{2, 4, 6}))
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := Provider(Metric(42))
		assert.Error(t, err)
	})
}
