package qcnn

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/davecgh/go-spew/spew"
)

// MaxQubits caps the register size. 24 qubits is already 16M complex
// amplitudes; anything beyond that does not fit the intended workloads.
const MaxQubits = 24

// normTolerance is the numerical tolerance for unit-norm and unitarity checks.
const normTolerance = 1e-9

/*
StateVector holds the full complex amplitude vector of an n-qubit register.
For n qubits the vector has 2^n entries, indexed by the computational basis
index; qubit q corresponds to bit q of that index. The vector is owned by
exactly one simulation run and is never shared across concurrent circuit
evaluations.
*/
type StateVector struct {
	amplitudes []complex128
	qubits     int
}

/*
NewStateVector creates an n-qubit register initialized to |0...0⟩.
*/
func NewStateVector(qubits int) (*StateVector, error) {
	if qubits < 1 || qubits > MaxQubits {
		return nil, fmt.Errorf("%w: %d qubits (want 1..%d)", ErrInvalidInput, qubits, MaxQubits)
	}

	amplitudes := make([]complex128, 1<<qubits)
	amplitudes[0] = 1

	return &StateVector{
		amplitudes: amplitudes,
		qubits:     qubits,
	}, nil
}

// Qubits returns the register size.
func (sv *StateVector) Qubits() int {
	return sv.qubits
}

// Clone returns an independent copy of the state.
func (sv *StateVector) Clone() *StateVector {
	amplitudes := make([]complex128, len(sv.amplitudes))
	copy(amplitudes, sv.amplitudes)
	return &StateVector{amplitudes: amplitudes, qubits: sv.qubits}
}

// Amplitudes returns a copy of the amplitude vector for safe external access.
func (sv *StateVector) Amplitudes() []complex128 {
	amplitudes := make([]complex128, len(sv.amplitudes))
	copy(amplitudes, sv.amplitudes)
	return amplitudes
}

// Norm returns the Euclidean norm of the state, 1.0 for any valid state.
func (sv *StateVector) Norm() float64 {
	var sum float64
	for _, a := range sv.amplitudes {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return math.Sqrt(sum)
}

func (sv *StateVector) checkQubit(q int) error {
	if q < 0 || q >= sv.qubits {
		return fmt.Errorf("%w: %d (register has %d qubits)", ErrQubitOutOfRange, q, sv.qubits)
	}
	return nil
}

/*
ApplySingle applies a 2x2 unitary to qubit q, touching only the amplitude
pairs whose basis indices differ in bit q. Equivalent to the full
tensor-product application restricted to the relevant subspace.
*/
func (sv *StateVector) ApplySingle(m SingleGate, q int) error {
	if err := sv.checkQubit(q); err != nil {
		return err
	}
	if !m.IsUnitary() {
		return fmt.Errorf("%w: single-qubit gate on qubit %d", ErrNotUnitary, q)
	}

	bit := 1 << q
	for i := range sv.amplitudes {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		a0, a1 := sv.amplitudes[i], sv.amplitudes[j]
		sv.amplitudes[i] = m[0][0]*a0 + m[0][1]*a1
		sv.amplitudes[j] = m[1][0]*a0 + m[1][1]*a1
	}

	return nil
}

/*
ApplyTwo applies a 4x4 unitary to the ordered qubit pair (a, b). The gate's
2-bit subindex treats qubit a as the high bit, so the matrix rows and columns
run over |a b⟩ in the order 00, 01, 10, 11. Target order matters: the
convolution block is directional.
*/
func (sv *StateVector) ApplyTwo(m TwoGate, a, b int) error {
	if err := sv.checkQubit(a); err != nil {
		return err
	}
	if err := sv.checkQubit(b); err != nil {
		return err
	}
	if a == b {
		return fmt.Errorf("%w: two-qubit gate targets must differ (got %d, %d)", ErrInvalidInput, a, b)
	}
	if !m.IsUnitary() {
		return fmt.Errorf("%w: two-qubit gate on qubits (%d, %d)", ErrNotUnitary, a, b)
	}

	bitA := 1 << a
	bitB := 1 << b
	for i := range sv.amplitudes {
		// Visit each 4-amplitude group once, at its base index.
		if i&bitA != 0 || i&bitB != 0 {
			continue
		}
		i00 := i
		i01 := i | bitB
		i10 := i | bitA
		i11 := i | bitA | bitB

		a00, a01, a10, a11 := sv.amplitudes[i00], sv.amplitudes[i01], sv.amplitudes[i10], sv.amplitudes[i11]
		sv.amplitudes[i00] = m[0][0]*a00 + m[0][1]*a01 + m[0][2]*a10 + m[0][3]*a11
		sv.amplitudes[i01] = m[1][0]*a00 + m[1][1]*a01 + m[1][2]*a10 + m[1][3]*a11
		sv.amplitudes[i10] = m[2][0]*a00 + m[2][1]*a01 + m[2][2]*a10 + m[2][3]*a11
		sv.amplitudes[i11] = m[3][0]*a00 + m[3][1]*a01 + m[3][2]*a10 + m[3][3]*a11
	}

	return nil
}

/*
ExpectationZ returns ⟨state|Z_q|state⟩, the Pauli-Z expectation on qubit q.
Basis states with bit q clear contribute +|amp|², those with it set -|amp|².
The result is real by construction and must lie in [-1, 1] up to tolerance.
*/
func (sv *StateVector) ExpectationZ(q int) (float64, error) {
	if err := sv.checkQubit(q); err != nil {
		return 0, err
	}

	bit := 1 << q
	var expectation float64
	for i, a := range sv.amplitudes {
		p := real(a)*real(a) + imag(a)*imag(a)
		if i&bit == 0 {
			expectation += p
		} else {
			expectation -= p
		}
	}

	if math.Abs(expectation) > 1+normTolerance {
		return 0, fmt.Errorf("%w: ⟨Z_%d⟩ = %v", ErrNumericalInstability, q, expectation)
	}

	return expectation, nil
}

// Probability returns the squared magnitude of the amplitude at basis index i.
func (sv *StateVector) Probability(i int) float64 {
	if i < 0 || i >= len(sv.amplitudes) {
		return 0
	}
	p := cmplx.Abs(sv.amplitudes[i])
	return p * p
}

/*
DebugState returns a dump of the register suitable for logging: qubit count,
norm, and the leading amplitudes.
*/
func (sv *StateVector) DebugState() string {
	head := sv.amplitudes
	if len(head) > 8 {
		head = head[:8]
	}
	return spew.Sdump(map[string]interface{}{
		"qubits":     sv.qubits,
		"norm":       sv.Norm(),
		"amplitudes": head,
	})
}
