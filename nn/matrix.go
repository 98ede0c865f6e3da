package nn

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func dot(m, n mat.Matrix) *mat.Dense {
	r, _ := m.Dims()
	_, c := n.Dims()
	o := mat.NewDense(r, c, nil)
	o.Product(m, n)
	return o
}

func apply(fn func(i, j int, v float64) float64, m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.Apply(fn, m)
	return o
}

func scale(s float64, m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.Scale(s, m)
	return o
}

func multiply(m, n mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.MulElem(m, n)
	return o
}

func subtract(m, n mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.Sub(m, n)
	return o
}

func sumAbs(m mat.Matrix) float64 {
	r, c := m.Dims()
	var sum float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			sum += math.Abs(m.At(i, j))
		}
	}
	return sum
}

func meanAbs(m mat.Matrix) float64 {
	r, c := m.Dims()
	if r*c == 0 {
		return 0
	}
	return sumAbs(m) / float64(r*c)
}

// randomArray draws size values uniformly from [-spread, spread] using the
// supplied source, so two networks seeded alike get identical weights.
func randomArray(size int, spread float64, src rand.Source) []float64 {
	dist := distuv.Uniform{
		Min: -spread,
		Max: spread,
		Src: src,
	}

	data := make([]float64, size)
	for i := 0; i < size; i++ {
		data[i] = dist.Rand()
	}
	return data
}

// rowsAt gathers the given rows of m into a new matrix, in index order.
func rowsAt(m *mat.Dense, indexes []int) *mat.Dense {
	_, c := m.Dims()
	o := mat.NewDense(len(indexes), c, nil)
	for i, idx := range indexes {
		o.SetRow(i, m.RawRowView(idx))
	}
	return o
}
