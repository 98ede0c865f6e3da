package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/jsupanova/numpynet/nn"
)

func buildNet(t *testing.T, seed uint64) *nn.Network {
	t.Helper()
	net, err := nn.New(nn.Config{
		NumFeatures:  2,
		BatchSize:    4,
		NumHidden:    1,
		HiddenSizes:  []int{4},
		Activation:   "sigmoid",
		LearningRate: 0.1,
		RandomSeed:   &seed,
	})
	require.NoError(t, err)
	net.Logf = func(string, ...interface{}) {}
	return net
}

func TestMatrixRoundTrip(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	wd := MatrixToWeightData("weight_0", m)
	assert.Equal(t, []int{2, 3}, wd.Shape)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, wd.Data)

	back, err := WeightDataToMatrix(wd)
	require.NoError(t, err)
	assert.True(t, mat.Equal(m, back))
}

func TestWeightDataToMatrixInvalid(t *testing.T) {
	_, err := WeightDataToMatrix(&WeightData{Name: "w", Shape: []int{2}, Data: []float64{1, 2}})
	require.Error(t, err)

	_, err = WeightDataToMatrix(&WeightData{Name: "w", Shape: []int{2, 2}, Data: []float64{1, 2, 3}})
	require.Error(t, err)
}

func TestSaveLoadWeights(t *testing.T) {
	net := buildNet(t, 42)
	mw := Snapshot(net, "sigmoid")
	assert.Equal(t, "1.0", mw.Version)
	assert.Equal(t, uint64(42), mw.Seed)
	require.Len(t, mw.Weights, 2)
	assert.Equal(t, "weight_0", mw.Weights[0].Name)

	path := filepath.Join(t.TempDir(), "weights.json")
	require.NoError(t, SaveWeights(path, mw))

	loaded, err := LoadWeights(path)
	require.NoError(t, err)
	assert.Equal(t, mw, loaded)
}

func TestLoadWeightsMissingFile(t *testing.T) {
	_, err := LoadWeights(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestSnapshotRestore(t *testing.T) {
	trained := buildNet(t, 42)
	in := mat.NewDense(4, 2, []float64{0, 0, 0, 1, 1, 0, 1, 1})
	out := mat.NewDense(4, 1, []float64{0, 1, 1, 0})
	require.NoError(t, trained.Train(in, out, nn.TrainOptions{Epochs: 5}))

	fresh := buildNet(t, 7)
	require.NoError(t, Restore(fresh, Snapshot(trained, "sigmoid")))

	for i := range trained.Weights() {
		assert.True(t, mat.Equal(trained.Weights()[i], fresh.Weights()[i]), "weight %d", i)
	}

	probe := mat.NewDense(1, 2, []float64{0.3, 0.7})
	assert.True(t, mat.Equal(trained.Predict(probe), fresh.Predict(probe)))
}

func TestRestoreShapeMismatch(t *testing.T) {
	net := buildNet(t, 42)
	mw := Snapshot(net, "sigmoid")
	mw.Weights = mw.Weights[:1]
	require.Error(t, Restore(net, mw))
}
