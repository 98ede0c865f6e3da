package viz

import (
	"gonum.org/v1/gonum/mat"

	"github.com/jsupanova/numpynet/nn"
)

// Grid evaluates the network over a dense mesh of its predict space, sampled
// every delta along both feature axes. The returned matrix is indexed
// [y][x] against the returned axes. ok is false when the network has no
// predict space yet or does not take exactly two input features; only the
// network's pure Predict is touched.
func Grid(net *nn.Network, delta float64) (grid *mat.Dense, axisX, axisY []float64, ok bool) {
	space, ok := net.PredictSpace()
	if !ok || net.NumFeatures() != 2 {
		return nil, nil, nil, false
	}

	axisX = arange(space[0], space[1], delta)
	axisY = arange(space[2], space[3], delta)
	if len(axisX) == 0 || len(axisY) == 0 {
		return nil, nil, nil, false
	}

	// One batched Predict over the whole mesh, row per grid point.
	input := mat.NewDense(len(axisX)*len(axisY), 2, nil)
	for iy, y := range axisY {
		for ix, x := range axisX {
			input.SetRow(iy*len(axisX)+ix, []float64{x, y})
		}
	}
	out := net.Predict(input)

	grid = mat.NewDense(len(axisY), len(axisX), nil)
	for iy := range axisY {
		for ix := range axisX {
			grid.Set(iy, ix, out.At(iy*len(axisX)+ix, 0))
		}
	}
	return grid, axisX, axisY, true
}

// arange mirrors the half-open mesh [start, stop) stepped by delta.
func arange(start, stop, delta float64) []float64 {
	if delta <= 0 || stop <= start {
		return nil
	}
	var out []float64
	for v := start; v < stop; v += delta {
		out = append(out, v)
	}
	return out
}
