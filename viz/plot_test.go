package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/jsupanova/numpynet/nn"
)

type captureSink struct {
	payloads []PlotData
}

func (s *captureSink) Send(pd PlotData) error {
	s.payloads = append(s.payloads, pd)
	return nil
}

func TestPlotLoss(t *testing.T) {
	sink := &captureSink{}
	c := NewCollector("test", sink)

	c.PlotLoss([]float64{0.5, 0.4, 0.3}, 2)

	require.Len(t, sink.payloads, 1)
	pd := sink.payloads[0]
	assert.Equal(t, LossCurve, pd.PlotType)
	assert.Equal(t, "test", pd.ModelName)
	require.Len(t, pd.Series, 2)
	assert.Equal(t, "loss", pd.Series[0].Name)
	assert.Equal(t, "rolling mean", pd.Series[1].Name)
	require.Len(t, pd.Series[0].Data, 3)
	assert.Equal(t, DataPoint{X: 1, Y: 0.4}, pd.Series[0].Data[1])
}

func TestRollingMean(t *testing.T) {
	points := rollingMean([]float64{1, 2, 3, 4}, 2)
	require.Len(t, points, 4)
	assert.Equal(t, 1.0, points[0].Y)
	assert.Equal(t, 1.5, points[1].Y)
	assert.Equal(t, 2.5, points[2].Y)
	assert.Equal(t, 3.5, points[3].Y)
}

func TestPlotPredictionSkipsUntrained(t *testing.T) {
	net := trainedNet(t, false)
	sink := &captureSink{}
	c := NewCollector("test", sink)

	c.PlotPrediction(net, 0.25, "")
	assert.Empty(t, sink.payloads)
}

func TestPlotPrediction(t *testing.T) {
	net := trainedNet(t, true)
	sink := &captureSink{}
	c := NewCollector("test", sink)

	c.PlotPrediction(net, 0.25, "")

	require.Len(t, sink.payloads, 1)
	pd := sink.payloads[0]
	assert.Equal(t, PredictionSurface, pd.PlotType)
	assert.Equal(t, "Prediction", pd.Title)
	require.Len(t, pd.Series, 1)
	assert.Equal(t, "heatmap", pd.Series[0].Type)
	assert.Len(t, pd.Series[0].Data, 16)
}

func TestPlotNetwork(t *testing.T) {
	net := trainedNet(t, true)
	sink := &captureSink{}
	c := NewCollector("test", sink)

	c.PlotNetwork(net.Layers(), net.Weights())

	require.Len(t, sink.payloads, 1)
	pd := sink.payloads[0]
	assert.Equal(t, NetworkStructure, pd.PlotType)
	// One layer-width series plus one heatmap per weight matrix.
	require.Len(t, pd.Series, 1+len(net.Weights()))
	assert.Equal(t, "layer widths", pd.Series[0].Name)
	assert.Equal(t, "weight_0", pd.Series[1].Name)
}

// trainedNet builds a small two-feature network; when train is set it runs one
// epoch over the unit square so the predict space becomes [0,1]x[0,1].
func trainedNet(t *testing.T, train bool) *nn.Network {
	t.Helper()
	seed := uint64(42)
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

	if train {
		in := mat.NewDense(4, 2, []float64{
			0, 0,
			0, 1,
			1, 0,
			1, 1,
		})
		out := mat.NewDense(4, 1, []float64{0, 1, 1, 0})
		require.NoError(t, net.Train(in, out, nn.TrainOptions{Epochs: 1}))
	}
	return net
}
