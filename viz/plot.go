// Package viz turns training diagnostics into plot payloads for an external
// renderer. The core trainer hands a Collector its loss history, prediction
// surfaces, and network structure; the Collector translates them into the
// PlotData JSON envelope and forwards them to a Sink (an HTTP sidecar service
// or a plain writer). Nothing here feeds back into training.
package viz

import (
	"strconv"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/jsupanova/numpynet/nn"
)

// PlotType identifies how a PlotData payload should be rendered.
type PlotType string

const (
	LossCurve         PlotType = "loss_curve"
	PredictionSurface PlotType = "prediction_surface"
	NetworkStructure  PlotType = "network_structure"
)

// PlotData is the JSON envelope understood by the plotting sidecar.
type PlotData struct {
	PlotType  PlotType  `json:"plot_type"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	ModelName string    `json:"model_name"`

	Series []SeriesData `json:"series"`
	Config PlotConfig   `json:"config"`

	Metrics map[string]interface{} `json:"metrics,omitempty"`
}

// SeriesData is a single data series in a plot.
type SeriesData struct {
	Name string      `json:"name"`
	Type string      `json:"type"` // "line", "bar", "heatmap"
	Data []DataPoint `json:"data"`
}

// DataPoint is one plotted value; Z is used by heatmaps.
type DataPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// PlotConfig carries per-plot axis labels and layout hints.
type PlotConfig struct {
	XAxisLabel string `json:"x_axis_label"`
	YAxisLabel string `json:"y_axis_label"`
	ShowLegend bool   `json:"show_legend"`
	ShowGrid   bool   `json:"show_grid"`
}

// Sink receives assembled plot payloads.
type Sink interface {
	Send(PlotData) error
}

// Collector implements the trainer's Visualizer interface by assembling
// PlotData payloads and forwarding them to its Sink. Send failures are
// swallowed: diagnostics never interfere with training.
type Collector struct {
	ModelName string
	Sink      Sink
}

func NewCollector(modelName string, sink Sink) *Collector {
	return &Collector{ModelName: modelName, Sink: sink}
}

// PlotLoss renders the per-epoch loss history with a rolling-mean overlay.
func (c *Collector) PlotLoss(history []float64, rollingSize int) {
	raw := make([]DataPoint, len(history))
	for i, v := range history {
		raw[i] = DataPoint{X: float64(i), Y: v}
	}

	pd := PlotData{
		PlotType:  LossCurve,
		Title:     "Training Loss",
		Timestamp: time.Now(),
		ModelName: c.ModelName,
		Series: []SeriesData{
			{Name: "loss", Type: "line", Data: raw},
			{Name: "rolling mean", Type: "line", Data: rollingMean(history, rollingSize)},
		},
		Config: PlotConfig{
			XAxisLabel: "epoch",
			YAxisLabel: "mean absolute error",
			ShowLegend: true,
			ShowGrid:   true,
		},
	}
	_ = c.Sink.Send(pd)
}

// PlotPrediction samples the network's predict space at the given mesh
// spacing and renders the surface as a heatmap. Networks without a predict
// space (untrained, or fewer than two features) are skipped.
func (c *Collector) PlotPrediction(net *nn.Network, delta float64, title string) {
	grid, axisX, axisY, ok := Grid(net, delta)
	if !ok {
		return
	}
	if title == "" {
		title = "Prediction"
	}

	points := make([]DataPoint, 0, len(axisX)*len(axisY))
	for iy, y := range axisY {
		for ix, x := range axisX {
			points = append(points, DataPoint{X: x, Y: y, Z: grid.At(iy, ix)})
		}
	}

	pd := PlotData{
		PlotType:  PredictionSurface,
		Title:     title,
		Timestamp: time.Now(),
		ModelName: c.ModelName,
		Series: []SeriesData{
			{Name: "prediction", Type: "heatmap", Data: points},
		},
		Config: PlotConfig{
			XAxisLabel: "x0",
			YAxisLabel: "x1",
			ShowGrid:   false,
		},
	}
	_ = c.Sink.Send(pd)
}

// PlotNetwork renders layer widths plus one weight heatmap per synapse matrix.
func (c *Collector) PlotNetwork(layers, weights []*mat.Dense) {
	widths := make([]DataPoint, len(layers))
	for i, l := range layers {
		_, cols := l.Dims()
		widths[i] = DataPoint{X: float64(i), Y: float64(cols)}
	}
	series := []SeriesData{{Name: "layer widths", Type: "bar", Data: widths}}

	for wi, w := range weights {
		rows, cols := w.Dims()
		points := make([]DataPoint, 0, rows*cols)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				points = append(points, DataPoint{X: float64(j), Y: float64(i), Z: w.At(i, j)})
			}
		}
		series = append(series, SeriesData{
			Name: "weight_" + strconv.Itoa(wi),
			Type: "heatmap",
			Data: points,
		})
	}

	pd := PlotData{
		PlotType:  NetworkStructure,
		Title:     "Network Structure",
		Timestamp: time.Now(),
		ModelName: c.ModelName,
		Series:    series,
		Config: PlotConfig{
			XAxisLabel: "unit",
			YAxisLabel: "layer",
			ShowLegend: true,
		},
	}
	_ = c.Sink.Send(pd)
}

func rollingMean(history []float64, window int) []DataPoint {
	if window < 1 {
		window = 1
	}
	points := make([]DataPoint, 0, len(history))
	var sum float64
	for i, v := range history {
		sum += v
		n := window
		if i+1 < window {
			n = i + 1
		} else if i >= window {
			sum -= history[i-window]
		}
		points = append(points, DataPoint{X: float64(i), Y: sum / float64(n)})
	}
	return points
}
