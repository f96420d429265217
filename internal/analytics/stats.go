package analytics

import (
	"math"
	"sort"
)

// mean returns the arithmetic mean; undefined for an empty sample
func mean(values []float64) Ratio {
	if len(values) == 0 {
		return Undefined
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return Defined(sum / float64(len(values)))
}

// median returns the sample median; undefined for an empty sample
func median(values []float64) Ratio {
	if len(values) == 0 {
		return Undefined
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return Defined((sorted[mid-1] + sorted[mid]) / 2)
	}
	return Defined(sorted[mid])
}

// pearson computes the Pearson correlation coefficient over paired samples.
// Undefined with fewer than 2 pairs or when either sample has no variance.
func pearson(xs, ys []float64) Ratio {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return Undefined
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return Undefined
	}

	r := cov / math.Sqrt(varX*varY)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return Undefined
	}
	return Defined(r)
}
