// numpynet-train: standalone trainer for the numpynet feedforward network.
//
// Usage:
//
//	numpynet-train --samples=256 --hidden=8 --epochs=200 --lr=0.1 --seed=42
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/jsupanova/numpynet/nn"
	"github.com/jsupanova/numpynet/utils"
	"github.com/jsupanova/numpynet/viz"
)

var (
	samples      = flag.Int("samples", 256, "Number of synthetic training samples")
	batchSize    = flag.Int("batch", 8, "Mini-batch size")
	hiddenSizes  = flag.String("hidden", "8", "Comma-separated hidden layer widths")
	activation   = flag.String("activation", "sigmoid", "Activation: sigmoid, tanh, relu")
	learningRate = flag.Float64("lr", 0.1, "Learning rate")
	weightDecay  = flag.Float64("decay", 0, "Weight decay fraction (0 disables)")
	initSpread   = flag.Float64("spread", 1.0, "Initial weight spread")
	seed         = flag.Int64("seed", -1, "Random seed (negative for auto)")
	epochs       = flag.Int("epochs", 200, "Number of training epochs")
	reportPct    = flag.Int("report", 5, "Report every N percent of epochs")
	plotURL      = flag.String("plot-url", "", "Sidecar plotting service URL (empty disables)")
	debugViz     = flag.Bool("debug-viz", false, "Also plot network structure")
	outputFile   = flag.String("output", "", "Output weights file (JSON)")
	verbose      = flag.Bool("verbose", true, "Verbose output")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose

	hidden, err := utils.ParseHiddenSizes(*hiddenSizes)
	if err != nil {
		log.Fatalf("parsing hidden sizes: %v", err)
	}

	cfg := nn.Config{
		NumFeatures:      2,
		BatchSize:        *batchSize,
		NumHidden:        len(hidden),
		HiddenSizes:      hidden,
		Activation:       *activation,
		LearningRate:     *learningRate,
		WeightDecay:      *weightDecay,
		InitWeightSpread: *initSpread,
	}
	if *seed >= 0 {
		s := uint64(*seed)
		cfg.RandomSeed = &s
	}

	fmt.Println("numpynet trainer")
	fmt.Printf("  Samples:       %d\n", *samples)
	fmt.Printf("  Batch size:    %d\n", *batchSize)
	fmt.Printf("  Hidden:        %v\n", hidden)
	fmt.Printf("  Activation:    %s\n", *activation)
	fmt.Printf("  Learning rate: %.4f\n", *learningRate)
	fmt.Printf("  Epochs:        %d\n", *epochs)
	fmt.Println()

	stats := &utils.TimingStats{}
	totalStart := time.Now()

	// Synthetic XOR-quadrant data: label 1 when exactly one coordinate is
	// above the midline.
	start := time.Now()
	dataRng := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	if *seed >= 0 {
		dataRng = rand.New(rand.NewSource(uint64(*seed)))
	}
	trainIn, trainOut := generateXOR(*samples, dataRng)
	stats.DataGenTime = time.Since(start)

	start = time.Now()
	net, err := nn.New(cfg)
	if err != nil {
		log.Fatalf("building network: %v", err)
	}
	stats.ModelInitTime = time.Since(start)

	fmt.Printf("Random seed: %d\n", net.Seed())
	net.ReportModel()

	var visualizer nn.Visualizer
	if *plotURL != "" {
		svc := viz.NewService(viz.ServiceConfig{BaseURL: *plotURL, Timeout: 10 * time.Second})
		svc.Enable()
		visualizer = viz.NewCollector("numpynet-xor", svc)
	}

	start = time.Now()
	err = net.Train(trainIn, trainOut, nn.TrainOptions{
		Epochs:         *epochs,
		ReportPercent:  *reportPct,
		Visualizer:     visualizer,
		DebugVisualize: *debugViz,
	})
	if err != nil {
		log.Fatalf("training: %v", err)
	}
	stats.TrainTime = time.Since(start)

	start = time.Now()
	accuracy := evaluate(net, trainIn, trainOut)
	stats.PredictTime = time.Since(start)
	fmt.Printf("\nTraining-set accuracy: %.2f%%\n", accuracy)

	stats.TotalTime = time.Since(totalStart)
	utils.PrintTimingStats(stats, *epochs)

	if *outputFile != "" {
		fmt.Printf("\nSaving weights to %s...\n", *outputFile)
		if err := utils.SaveWeights(*outputFile, utils.Snapshot(net, *activation)); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Done!")
	}
}

func generateXOR(n int, rng *rand.Rand) (*mat.Dense, *mat.Dense) {
	in := mat.NewDense(n, 2, nil)
	out := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x0 := rng.Float64()
		x1 := rng.Float64()
		in.SetRow(i, []float64{x0, x1})
		if (x0 > 0.5) != (x1 > 0.5) {
			out.Set(i, 0, 1)
		}
	}
	return in, out
}

func evaluate(net *nn.Network, in, want *mat.Dense) float64 {
	pred := net.Predict(in)
	rows, _ := in.Dims()
	var correct int
	for i := 0; i < rows; i++ {
		label := 0.0
		if pred.At(i, 0) > 0.5 {
			label = 1
		}
		if label == want.At(i, 0) {
			correct++
		}
	}
	return 100 * float64(correct) / float64(rows)
}
