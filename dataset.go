package qcnn

import (
	"fmt"
	"math/rand"
)

/*
Example is one training or test sample: a fixed-length real feature vector
and a binary class label. Examples are read-only once constructed; the
objective holds references during a batch and never mutates them.
*/
type Example struct {
	Features []float64
	Label    int
}

/*
ValidateDataset checks every example against the circuit's requirements:
feature length exactly 2^n and label in {0, 1}. Preprocessing (image loading,
class filtering, resizing) is an external collaborator; this is the boundary
where its output is verified.
*/
func ValidateDataset(examples []Example, qubits int) error {
	want := 1 << qubits
	for i, ex := range examples {
		if len(ex.Features) != want {
			return fmt.Errorf("%w: example %d has %d features, want %d", ErrInvalidInput, i, len(ex.Features), want)
		}
		if ex.Label != 0 && ex.Label != 1 {
			return fmt.Errorf("%w: example %d has label %d, want 0 or 1", ErrInvalidInput, i, ex.Label)
		}
	}
	return nil
}

/*
SyntheticTwoClass builds a separable two-class dataset for tests and demos.
Class 0 concentrates near basis state |0...0⟩, class 1 near |1...1⟩, each
with a small amount of uniform noise so the embedding never sees an exact
basis vector. Deterministic for a fixed seed.
*/
func SyntheticTwoClass(qubits, perClass int, seed int64) []Example {
	rng := rand.New(rand.NewSource(seed))
	dim := 1 << qubits

	examples := make([]Example, 0, 2*perClass)
	for class := 0; class < 2; class++ {
		peak := 0
		if class == 1 {
			peak = dim - 1
		}
		for i := 0; i < perClass; i++ {
			features := make([]float64, dim)
			for j := range features {
				features[j] = rng.Float64() * 0.05
			}
			features[peak] = 1
			examples = append(examples, Example{Features: features, Label: class})
		}
	}

	// Interleave the classes so any contiguous batch is mixed.
	rng.Shuffle(len(examples), func(i, j int) {
		examples[i], examples[j] = examples[j], examples[i]
	})

	return examples
}
