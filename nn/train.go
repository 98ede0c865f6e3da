package nn

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Visualizer receives diagnostic snapshots during training. Implementations
// are side-effecting sinks; nothing they return is consumed by the trainer.
type Visualizer interface {
	// PlotLoss renders the loss history with a rolling window of the given size.
	PlotLoss(history []float64, rollingSize int)
	// PlotPrediction renders a dense prediction surface over the network's
	// predict space, sampled at the given mesh spacing.
	PlotPrediction(net *Network, delta float64, title string)
	// PlotNetwork renders the layer and weight structure.
	PlotNetwork(layers, weights []*mat.Dense)
}

// TrainOptions controls one Train call.
type TrainOptions struct {
	Epochs int

	// ReportPercent sets the reporting interval as a percentage of the epoch
	// count: progress is logged (and plots emitted) every
	// round(Epochs*ReportPercent/100) epochs. Defaults to 5.
	ReportPercent int

	// Visualizer, when non-nil, receives loss/prediction plots at every
	// reporting interval.
	Visualizer Visualizer
	// DebugVisualize additionally emits layer/weight structure plots.
	DebugVisualize bool
}

// Train runs mini-batch gradient descent over the given training set for the
// configured epoch count. Each epoch draws ceil(setSize/batchSize) batches via
// the index sampler, runs a stateful forward pass per batch, backpropagates
// deltas through the transposed weight chain, applies the weight updates, and
// finally applies weight decay when configured. One mean-absolute-error entry
// is appended to the loss history per epoch.
//
// Divergence is not guarded: with an unbounded learning rate the weights can
// grow without limit and the loss history is where NaN/Inf will surface.
func (net *Network) Train(trainIn, trainOut *mat.Dense, opts TrainOptions) error {
	setSize, features := trainIn.Dims()
	outRows, outCols := trainOut.Dims()
	if features != net.cfg.NumFeatures {
		return errors.Errorf("training input has %d features, network wants %d",
			features, net.cfg.NumFeatures)
	}
	if outRows != setSize || outCols != 1 {
		return errors.Errorf("training output is %dx%d, want %dx1", outRows, outCols, setSize)
	}
	if opts.Epochs < 1 {
		return errors.Errorf("epochs must be positive, got %d", opts.Epochs)
	}
	if opts.ReportPercent == 0 {
		opts.ReportPercent = 5
	}

	smp := newSampler(setSize, net.cfg.BatchSize, net.rng)
	iterations := smp.iterations()

	net.Logf("given %d training points", setSize)
	net.Logf("will train in %d iterations per epoch for %d epochs (in batches of %d)",
		iterations, opts.Epochs, net.cfg.BatchSize)

	reportEvery := int(math.Round(float64(opts.Epochs) * 0.01 * float64(opts.ReportPercent)))
	if reportEvery < 1 {
		reportEvery = 1
	}
	net.Logf("will output every %d epochs", reportEvery)

	if net.predictSpace == nil && features >= 2 {
		col0 := mat.Col(nil, 0, trainIn)
		col1 := mat.Col(nil, 1, trainIn)
		net.predictSpace = []float64{
			floats.Min(col0), floats.Max(col0),
			floats.Min(col1), floats.Max(col1),
		}
	}

	last := len(net.layers) - 1
	errs := make([]*mat.Dense, len(net.layers))
	deltas := make([]*mat.Dense, len(net.layers))

	for epoch := 0; epoch < opts.Epochs; epoch++ {
		smp.reset()
		var batchLoss float64
		for t := 0; t < iterations; t++ {
			indexes := smp.next()
			batchIn := rowsAt(trainIn, indexes)
			batchOut := rowsAt(trainOut, indexes)

			net.Forward(batchIn)

			// Output error and delta; the learning rate is folded into the
			// output delta once and rides the recursion from there.
			errs[last] = subtract(batchOut, net.layers[last])
			deltas[last] = scale(net.cfg.LearningRate,
				multiply(errs[last], net.activator.Deactivate(net.layers[last])))

			// Hidden layers, walking the transposed weight chain backwards.
			for i := last - 1; i >= 1; i-- {
				errs[i] = dot(deltas[i+1], net.weights[i].T())
				deltas[i] = multiply(errs[i], net.activator.Deactivate(net.layers[i]))
			}

			// Updates are applied only after every delta is in hand.
			for i := last; i >= 1; i-- {
				net.weights[i-1].Add(net.weights[i-1], dot(net.layers[i-1].T(), deltas[i]))
			}

			batchLoss += sumAbs(errs[last])
		}

		// Denominator is the full set size, not the batch size.
		net.lossHistory = append(net.lossHistory, batchLoss/(float64(iterations)*float64(setSize)))

		if epoch%reportEvery == 0 {
			net.Logf("epoch: %d average error: %g", epoch, net.lossHistory[len(net.lossHistory)-1])
			if opts.Visualizer != nil {
				opts.Visualizer.PlotLoss(net.LossHistory(), reportEvery)
				opts.Visualizer.PlotPrediction(net, 0.02, "")
				if opts.DebugVisualize {
					opts.Visualizer.PlotNetwork(net.layers, net.weights)
				}
			}
		}

		if net.cfg.WeightDecay > 0 {
			for i := last; i >= 1; i-- {
				w := net.weights[i-1]
				w.Sub(w, scale(net.cfg.LearningRate*net.cfg.WeightDecay, w))
			}
		}
	}

	net.Logf("final error: %g", meanAbs(errs[last]))
	if opts.Visualizer != nil {
		opts.Visualizer.PlotPrediction(net, 0.002, "Final Prediction")
	}

	return nil
}
