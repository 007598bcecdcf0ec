package qcnn

import (
	"fmt"
	"math/bits"

	"gonum.org/v1/gonum/floats"
)

/*
AmplitudeEmbed maps a classical feature vector onto a quantum register by
amplitude encoding: the vector is L2-normalized and its entries become the
real amplitudes of the state, imaginary parts zero. The mapping is
deterministic and carries no trainable parameters.

The feature length must be a power of two (2^n for an n-qubit register). A
zero-norm vector has no defined embedding and is rejected.
*/
func AmplitudeEmbed(features []float64) (*StateVector, error) {
	n := len(features)
	if n == 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: feature length %d is not a power of two", ErrInvalidInput, n)
	}

	norm := floats.Norm(features, 2)
	if norm == 0 {
		return nil, fmt.Errorf("%w: zero-norm feature vector has no embedding", ErrInvalidInput)
	}

	qubits := bits.TrailingZeros(uint(n))
	sv, err := NewStateVector(qubits)
	if err != nil {
		return nil, err
	}

	for i, f := range features {
		sv.amplitudes[i] = complex(f/norm, 0)
	}

	return sv, nil
}
