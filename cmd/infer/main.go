// numpynet-infer: loads saved weights and predicts for feature pairs given on
// the command line.
//
// Usage:
//
//	numpynet-infer --weights=model.json 0.2 0.9 0.8 0.8
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/jsupanova/numpynet/nn"
	"github.com/jsupanova/numpynet/utils"
)

var weightsFile = flag.String("weights", "", "Weights file written by numpynet-train")

func main() {
	flag.Parse()
	if *weightsFile == "" {
		log.Fatal("--weights is required")
	}
	args := flag.Args()
	if len(args) == 0 || len(args)%2 != 0 {
		log.Fatal("expected an even number of feature values (x0 x1 pairs)")
	}

	mw, err := utils.LoadWeights(*weightsFile)
	if err != nil {
		log.Fatalf("loading weights: %v", err)
	}
	net, err := rebuild(mw)
	if err != nil {
		log.Fatalf("rebuilding network: %v", err)
	}

	input := mat.NewDense(len(args)/2, 2, nil)
	for i := 0; i < len(args); i += 2 {
		x0, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			log.Fatalf("parsing %q: %v", args[i], err)
		}
		x1, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			log.Fatalf("parsing %q: %v", args[i+1], err)
		}
		input.SetRow(i/2, []float64{x0, x1})
	}

	pred := net.Predict(input)
	for i := 0; i < len(args)/2; i++ {
		fmt.Printf("(%s, %s) -> %.6f\n", args[2*i], args[2*i+1], pred.At(i, 0))
	}
}

// rebuild derives the topology from the saved weight shapes: the first shape's
// rows give the feature count, each matrix's columns the next layer's width.
func rebuild(mw *utils.ModelWeights) (*nn.Network, error) {
	if len(mw.Weights) == 0 {
		return nil, fmt.Errorf("weights file holds no matrices")
	}
	for _, wd := range mw.Weights {
		if len(wd.Shape) != 2 {
			return nil, fmt.Errorf("weight %q has %d dimensions, want 2", wd.Name, len(wd.Shape))
		}
	}
	hidden := make([]int, 0, len(mw.Weights)-1)
	for _, wd := range mw.Weights[:len(mw.Weights)-1] {
		hidden = append(hidden, wd.Shape[1])
	}

	seed := mw.Seed
	cfg := nn.Config{
		NumFeatures:  mw.Weights[0].Shape[0],
		BatchSize:    1,
		NumHidden:    len(hidden),
		HiddenSizes:  hidden,
		Activation:   mw.Activation,
		LearningRate: 0.1, // unused for pure prediction, must still be valid
		RandomSeed:   &seed,
	}
	net, err := nn.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := utils.Restore(net, mw); err != nil {
		return nil, err
	}
	return net, nil
}
