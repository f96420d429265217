package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	t.Run("empty sample undefined", func(t *testing.T) {
		assert.False(t, mean(nil).Defined)
	})

	t.Run("values", func(t *testing.T) {
		r := mean([]float64{1, 2, 3, 4})
		require.True(t, r.Defined)
		assert.InDelta(t, 2.5, r.Value, 1e-9)
	})
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
		ok     bool
	}{
		{name: "empty undefined", values: nil, ok: false},
		{name: "single value", values: []float64{7}, want: 7, ok: true},
		{name: "odd count", values: []float64{5, 1, 3}, want: 3, ok: true},
		{name: "even count", values: []float64{4, 1, 3, 2}, want: 2.5, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := median(tt.values)
			assert.Equal(t, tt.ok, r.Defined)
			if tt.ok {
				assert.InDelta(t, tt.want, r.Value, 1e-9)
			}
		})
	}
}

func TestPearson(t *testing.T) {
	t.Run("perfect positive", func(t *testing.T) {
		r := pearson([]float64{1, 2, 3}, []float64{2, 4, 6})
		require.True(t, r.Defined)
		assert.InDelta(t, 1.0, r.Value, 1e-9)
	})

	t.Run("perfect negative", func(t *testing.T) {
		r := pearson([]float64{1, 2, 3}, []float64{6, 4, 2})
		require.True(t, r.Defined)
		assert.InDelta(t, -1.0, r.Value, 1e-9)
	})

	t.Run("fewer than two pairs undefined", func(t *testing.T) {
		assert.False(t, pearson([]float64{1}, []float64{2}).Defined)
		assert.False(t, pearson(nil, nil).Defined)
	})

	t.Run("mismatched lengths undefined", func(t *testing.T) {
		assert.False(t, pearson([]float64{1, 2}, []float64{1}).Defined)
	})

	t.Run("zero variance undefined", func(t *testing.T) {
		assert.False(t, pearson([]float64{5, 5, 5}, []float64{1, 2, 3}).Defined)
	})
}
