// Package nn implements a fully-connected feedforward network trained by
// mini-batch gradient descent with hand-derived backpropagation. Layers and
// weights are gonum dense matrices owned exclusively by a Network value; a
// forward pass overwrites the layer buffers wholesale, while the weights are
// the only state that persists learning across batches.
package nn

import (
	"log"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Config carries the construction-time hyperparameters of a Network.
type Config struct {
	// NumFeatures is the input width, BatchSize the fixed row count of every
	// training batch.
	NumFeatures int
	BatchSize   int

	// NumHidden is the hidden layer count. HiddenSizes optionally gives the
	// width of each hidden layer; when nil it defaults to BatchSize repeated
	// NumHidden times. When both are set their lengths must agree.
	NumHidden   int
	HiddenSizes []int

	// Activation names the nonlinearity applied uniformly across layers.
	Activation string

	LearningRate float64
	// WeightDecay, when positive, shrinks every weight matrix by
	// lr*decay once per epoch.
	WeightDecay float64
	// InitWeightSpread bounds the magnitude of initial weights; defaults to 1.
	InitWeightSpread float64

	// RandomSeed makes construction and training reproducible. When nil a
	// seed is generated and logged, and remains readable via Seed().
	RandomSeed *uint64
}

// Network holds the layer activation buffers and weight matrices. The output
// layer is fixed at one column: this network does scalar regression.
type Network struct {
	cfg       Config
	activator Activator

	// layers[0] is the input batch, layers[len-1] the output batch.
	// weights[i] maps layers[i] to the pre-activation input of layers[i+1].
	layers  []*mat.Dense
	weights []*mat.Dense

	rng  *rand.Rand
	seed uint64

	lossHistory  []float64
	predictSpace []float64 // [minX0, maxX0, minX1, maxX1]; set on first Train

	// Logf receives human-readable progress lines. Defaults to log.Printf.
	Logf func(format string, args ...interface{})
}

// New builds a network from cfg: weights randomized uniformly in
// [-InitWeightSpread, +InitWeightSpread], then one forward pass with a
// zero-filled batch to materialize the layer shapes. No learning happens in
// that pass.
func New(cfg Config) (*Network, error) {
	if cfg.InitWeightSpread == 0 {
		cfg.InitWeightSpread = 1.0
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	if cfg.HiddenSizes == nil {
		cfg.HiddenSizes = make([]int, cfg.NumHidden)
		for i := range cfg.HiddenSizes {
			cfg.HiddenSizes[i] = cfg.BatchSize
		}
	}

	activator, err := LookupActivator(cfg.Activation)
	if err != nil {
		return nil, err
	}

	net := &Network{
		cfg:       cfg,
		activator: activator,
		Logf:      log.Printf,
	}

	if cfg.RandomSeed != nil {
		net.seed = *cfg.RandomSeed
	} else {
		// Close to the 32-bit unsigned limit, like the reference trainer.
		net.seed = rand.New(rand.NewSource(uint64(time.Now().UnixNano()))).Uint64() % 4_000_000_000
		net.Logf("no random seed selected, using: %d", net.seed)
	}
	net.rng = rand.New(rand.NewSource(net.seed))

	// Layer widths: input, hidden chain, scalar output.
	widths := make([]int, 0, cfg.NumHidden+2)
	widths = append(widths, cfg.NumFeatures)
	widths = append(widths, cfg.HiddenSizes...)
	widths = append(widths, 1)

	net.weights = make([]*mat.Dense, len(widths)-1)
	for i := range net.weights {
		rows, cols := widths[i], widths[i+1]
		net.weights[i] = mat.NewDense(rows, cols, randomArray(rows*cols, cfg.InitWeightSpread, net.rng))
	}

	net.layers = make([]*mat.Dense, len(widths))
	net.Forward(mat.NewDense(cfg.BatchSize, cfg.NumFeatures, nil))

	return net, nil
}

func validate(cfg Config) error {
	switch {
	case cfg.NumFeatures < 1:
		return errors.Wrapf(ErrInvalidTopology, "num features %d", cfg.NumFeatures)
	case cfg.BatchSize < 1:
		return errors.Wrapf(ErrInvalidTopology, "batch size %d", cfg.BatchSize)
	case cfg.NumHidden < 0:
		return errors.Wrapf(ErrInvalidTopology, "num hidden %d", cfg.NumHidden)
	case cfg.HiddenSizes != nil && len(cfg.HiddenSizes) != cfg.NumHidden:
		return errors.Wrapf(ErrInvalidTopology, "%d hidden sizes for %d hidden layers",
			len(cfg.HiddenSizes), cfg.NumHidden)
	case cfg.LearningRate <= 0:
		return errors.Errorf("learning rate must be positive, got %g", cfg.LearningRate)
	case cfg.WeightDecay < 0:
		return errors.Errorf("weight decay must be non-negative, got %g", cfg.WeightDecay)
	case cfg.InitWeightSpread <= 0:
		return errors.Errorf("init weight spread must be positive, got %g", cfg.InitWeightSpread)
	}
	for i, size := range cfg.HiddenSizes {
		if size < 1 {
			return errors.Wrapf(ErrInvalidTopology, "hidden layer %d has size %d", i, size)
		}
	}
	return nil
}

// Forward feeds input through the network, overwriting the stored layer
// buffers in place. layers[0] becomes a copy of input; each following layer is
// the activated matrix product of its predecessor and the connecting weights.
func (net *Network) Forward(input mat.Matrix) {
	net.layers[0] = mat.DenseCopyOf(input)
	for i := 0; i < len(net.layers)-1; i++ {
		net.layers[i+1] = apply(net.activator.Activate, dot(net.layers[i], net.weights[i]))
	}
}

// Predict runs the same recurrence as Forward through a local chain, leaving
// the stored layers and weights untouched. The input row count is arbitrary;
// it need not match the training batch size.
func (net *Network) Predict(input mat.Matrix) *mat.Dense {
	prediction := mat.DenseCopyOf(input)
	for i := range net.weights {
		prediction = apply(net.activator.Activate, dot(prediction, net.weights[i]))
	}
	return prediction
}

// Seed reports the seed the network's generator was built with, whether
// configured or generated.
func (net *Network) Seed() uint64 {
	return net.seed
}

// NumFeatures is the input width the network was built for.
func (net *Network) NumFeatures() int {
	return net.cfg.NumFeatures
}

// NumLayers counts activation buffers, input and output included.
func (net *Network) NumLayers() int {
	return len(net.layers)
}

// LossHistory returns a copy of the per-epoch mean absolute error, one entry
// per completed epoch.
func (net *Network) LossHistory() []float64 {
	return append([]float64(nil), net.lossHistory...)
}

// PredictSpace reports the [minX0, maxX0, minX1, maxX1] bounding box derived
// from the first training call's inputs; ok is false before training or when
// the network has fewer than two input features.
func (net *Network) PredictSpace() (space [4]float64, ok bool) {
	if net.predictSpace == nil {
		return space, false
	}
	copy(space[:], net.predictSpace)
	return space, true
}

// Layers exposes the activation buffers for structural visualization. They are
// overwritten by every forward pass.
func (net *Network) Layers() []*mat.Dense {
	return net.layers
}

// Weights exposes the weight matrices for visualization and persistence.
func (net *Network) Weights() []*mat.Dense {
	return net.weights
}

// SetWeights replaces the weight matrices, e.g. with values restored from
// disk. The replacement chain must match the network's shapes exactly.
func (net *Network) SetWeights(weights []*mat.Dense) error {
	if len(weights) != len(net.weights) {
		return errors.Wrapf(ErrInvalidTopology, "%d weight matrices, want %d",
			len(weights), len(net.weights))
	}
	for i, w := range weights {
		r, c := w.Dims()
		wr, wc := net.weights[i].Dims()
		if r != wr || c != wc {
			return errors.Wrapf(ErrInvalidTopology, "weight %d is %dx%d, want %dx%d",
				i, r, c, wr, wc)
		}
	}
	for i, w := range weights {
		net.weights[i] = mat.DenseCopyOf(w)
	}
	return nil
}

// ReportModel logs a topology summary.
func (net *Network) ReportModel() {
	net.Logf("model topology:")
	net.Logf("number of layers: %d (%d hidden)", len(net.layers), len(net.layers)-2)
	for i, w := range net.weights {
		lr, lc := net.layers[i].Dims()
		wr, wc := w.Dims()
		net.Logf("layer %d: [%d %d]", i+1, lr, lc)
		net.Logf("weight %d: [%d %d]", i+1, wr, wc)
	}
	lr, lc := net.layers[len(net.layers)-1].Dims()
	net.Logf("layer %d: [%d %d]", len(net.layers), lr, lc)
}
