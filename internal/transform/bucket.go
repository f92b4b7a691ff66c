package transform

import "math"

// Bins maps a continuous value onto named ordinal bins with fixed
// boundary edges. A value exactly on an interior edge belongs to the
// bin starting at that edge, so a price of exactly 50 is Mid-range
// rather than Budget. The last bin also includes its upper edge. A
// value outside the outer edges maps to no bin (missing).
type Bins struct {
	Edges  []float64 // len(Labels)+1, strictly increasing
	Labels []string
}

// Label returns the bin label for v, or nil when v falls outside the
// outer edges.
func (b Bins) Label(v float64) interface{} {
	if v < b.Edges[0] || v > b.Edges[len(b.Edges)-1] {
		return nil
	}
	for i := 0; i < len(b.Labels)-1; i++ {
		if v < b.Edges[i+1] {
			return b.Labels[i]
		}
	}
	return b.Labels[len(b.Labels)-1]
}

// Bin definitions used by the transformations.
var (
	priceBins = Bins{
		Edges:  []float64{0, 50, 200, 1000, math.Inf(1)},
		Labels: []string{"Budget", "Mid-range", "Premium", "Luxury"},
	}
	ratingBins = Bins{
		Edges:  []float64{0, 2, 3, 4, 5},
		Labels: []string{"Poor", "Fair", "Good", "Excellent"},
	}
	sentimentBins = Bins{
		Edges:  []float64{-1, -0.3, 0.3, 1},
		Labels: []string{"Negative", "Neutral", "Positive"},
	}
)
