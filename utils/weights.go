// Package utils holds trainer-side helpers: weight persistence, CLI config
// parsing, and timing reports. The network core does not depend on it.
package utils

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/jsupanova/numpynet/nn"
)

// WeightData is one serialized weight matrix.
type WeightData struct {
	Name  string    `json:"name"`
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

// ModelWeights is the on-disk form of a trained network: the weight chain plus
// enough metadata to rebuild a matching topology.
type ModelWeights struct {
	Version    string        `json:"version"`
	Activation string        `json:"activation"`
	Seed       uint64        `json:"seed"`
	Weights    []*WeightData `json:"weights"`
}

// SaveWeights writes model weights to a JSON file.
func SaveWeights(filepath string, weights *ModelWeights) error {
	data, err := json.MarshalIndent(weights, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling weights")
	}
	return os.WriteFile(filepath, data, 0644)
}

// LoadWeights reads model weights from a JSON file.
func LoadWeights(filepath string) (*ModelWeights, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "reading weights file")
	}
	var weights ModelWeights
	if err := json.Unmarshal(data, &weights); err != nil {
		return nil, errors.Wrap(err, "unmarshaling weights")
	}
	return &weights, nil
}

// MatrixToWeightData flattens a matrix row-major into serializable form.
func MatrixToWeightData(name string, m *mat.Dense) *WeightData {
	rows, cols := m.Dims()
	data := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data = append(data, m.At(i, j))
		}
	}
	return &WeightData{Name: name, Shape: []int{rows, cols}, Data: data}
}

// Snapshot captures a network's learned weights for saving.
func Snapshot(net *nn.Network, activation string) *ModelWeights {
	ws := net.Weights()
	mw := &ModelWeights{
		Version:    "1.0",
		Activation: activation,
		Seed:       net.Seed(),
		Weights:    make([]*WeightData, len(ws)),
	}
	for i, w := range ws {
		mw.Weights[i] = MatrixToWeightData(fmt.Sprintf("weight_%d", i), w)
	}
	return mw
}

// Restore loads saved weights back into a network of matching topology.
func Restore(net *nn.Network, mw *ModelWeights) error {
	matrices := make([]*mat.Dense, len(mw.Weights))
	for i, wd := range mw.Weights {
		m, err := WeightDataToMatrix(wd)
		if err != nil {
			return err
		}
		matrices[i] = m
	}
	return net.SetWeights(matrices)
}

// WeightDataToMatrix rebuilds the dense matrix from serialized form.
func WeightDataToMatrix(wd *WeightData) (*mat.Dense, error) {
	if len(wd.Shape) != 2 {
		return nil, errors.Errorf("weight %q has %d dimensions, want 2", wd.Name, len(wd.Shape))
	}
	rows, cols := wd.Shape[0], wd.Shape[1]
	if len(wd.Data) != rows*cols {
		return nil, errors.Errorf("weight %q has %d values for shape %dx%d",
			wd.Name, len(wd.Data), rows, cols)
	}
	return mat.NewDense(rows, cols, append([]float64(nil), wd.Data...)), nil
}
