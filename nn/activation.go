package nn

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Activator supplies the nonlinearity applied after each matrix product and
// its derivative. Deactivate takes ALREADY-ACTIVATED values, not pre-activation
// sums: backpropagation passes layer outputs straight into it, so e.g. the
// sigmoid derivative is y*(1-y) in terms of the forward output y.
type Activator interface {
	Activate(i, j int, sum float64) float64
	Deactivate(m mat.Matrix) mat.Matrix
	fmt.Stringer
}

var ActivatorLookup = map[string]Activator{
	"sigmoid": Sigmoid{},
	"tanh":    Tanh{},
	"relu":    ReLU{},
}

// LookupActivator resolves an activation by name, failing with
// ErrUnknownActivation for names outside ActivatorLookup.
func LookupActivator(name string) (Activator, error) {
	a, ok := ActivatorLookup[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownActivation, "%q", name)
	}
	return a, nil
}

type Sigmoid struct{}

func (s Sigmoid) Activate(i, j int, sum float64) float64 {
	return 1.0 / (1.0 + math.Exp(-sum))
}

func (s Sigmoid) Deactivate(m mat.Matrix) mat.Matrix {
	return apply(func(i, j int, y float64) float64 {
		return y * (1.0 - y)
	}, m)
}

func (s Sigmoid) String() string {
	return "sigmoid"
}

type Tanh struct{}

func (t Tanh) Activate(i, j int, sum float64) float64 {
	return math.Tanh(sum)
}

func (t Tanh) Deactivate(m mat.Matrix) mat.Matrix {
	return apply(func(i, j int, y float64) float64 {
		return 1.0 - y*y
	}, m)
}

func (t Tanh) String() string {
	return "tanh"
}

// ReLU is the leaky variant; a small negative-side slope keeps dead units
// trainable.
type ReLU struct{}

const reluLeak = 0.0001

func (r ReLU) Activate(i, j int, sum float64) float64 {
	if sum < 0 {
		return reluLeak * sum
	}
	return sum
}

func (r ReLU) Deactivate(m mat.Matrix) mat.Matrix {
	// Activation preserves sign, so the activated value is enough to tell
	// which side of the kink the unit was on.
	return apply(func(i, j int, y float64) float64 {
		if y < 0 {
			return reluLeak
		}
		return 1
	}, m)
}

func (r ReLU) String() string {
	return "relu"
}
