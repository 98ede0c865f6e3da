package nn

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLookupActivator(t *testing.T) {
	for _, name := range []string{"sigmoid", "tanh", "relu"} {
		a, err := LookupActivator(name)
		require.NoError(t, err)
		assert.Equal(t, name, a.String())
	}
}

func TestLookupActivatorUnknown(t *testing.T) {
	_, err := LookupActivator("softplus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownActivation))
}

func TestSigmoidActivate(t *testing.T) {
	s := Sigmoid{}
	assert.InDelta(t, 0.5, s.Activate(0, 0, 0), 1e-12)
	assert.InDelta(t, 0.7310585786300049, s.Activate(0, 0, 1), 1e-12)
}

// Deactivate takes already-activated values: for sigmoid output y the
// derivative is y*(1-y), for tanh output y it is 1-y*y.
func TestDeactivateUsesActivatedValues(t *testing.T) {
	y := mat.NewDense(1, 2, []float64{0.25, 0.5})

	d := Sigmoid{}.Deactivate(y)
	assert.InDelta(t, 0.25*0.75, d.At(0, 0), 1e-12)
	assert.InDelta(t, 0.25, d.At(0, 1), 1e-12)

	d = Tanh{}.Deactivate(y)
	assert.InDelta(t, 1-0.25*0.25, d.At(0, 0), 1e-12)
	assert.InDelta(t, 0.75, d.At(0, 1), 1e-12)
}

func TestReLUDeactivate(t *testing.T) {
	y := mat.NewDense(1, 2, []float64{2.0, -0.0002})
	d := ReLU{}.Deactivate(y)
	assert.Equal(t, 1.0, d.At(0, 0))
	assert.Equal(t, reluLeak, d.At(0, 1))
}
