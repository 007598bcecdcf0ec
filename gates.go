package qcnn

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"
)

// SingleGate is a dense 2x2 unitary acting on one qubit.
type SingleGate [2][2]complex128

// TwoGate is a dense 4x4 unitary acting on an ordered qubit pair. Rows and
// columns run over |first second⟩ in the order 00, 01, 10, 11.
type TwoGate [4][4]complex128

/*
RY returns the rotation about the Y axis by angle theta.

	RY(θ) = [ cos(θ/2)  -sin(θ/2) ]
	        [ sin(θ/2)   cos(θ/2) ]
*/
func RY(theta float64) SingleGate {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return SingleGate{
		{c, -s},
		{s, c},
	}
}

/*
RZ returns the rotation about the Z axis by angle theta.

	RZ(θ) = diag(e^{-iθ/2}, e^{iθ/2})
*/
func RZ(theta float64) SingleGate {
	return SingleGate{
		{cmplx.Exp(complex(0, -theta/2)), 0},
		{0, cmplx.Exp(complex(0, theta/2))},
	}
}

/*
Rot returns the general single-qubit rotation RZ(omega)·RY(theta)·RZ(phi),
the three-parameter block the convolution template uses on each target.
Rot(0, 0, 0) is the identity.
*/
func Rot(phi, theta, omega float64) SingleGate {
	c := math.Cos(theta / 2)
	s := math.Sin(theta / 2)
	return SingleGate{
		{
			cmplx.Exp(complex(0, -(phi+omega)/2)) * complex(c, 0),
			-cmplx.Exp(complex(0, (phi-omega)/2)) * complex(s, 0),
		},
		{
			cmplx.Exp(complex(0, (omega-phi)/2)) * complex(s, 0),
			cmplx.Exp(complex(0, (phi+omega)/2)) * complex(c, 0),
		},
	}
}

/*
CNOT returns the controlled-NOT with the pair's first qubit as control:
|10⟩ ↔ |11⟩.
*/
func CNOT() TwoGate {
	return TwoGate{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	}
}

/*
CNOTReversed returns the controlled-NOT with the pair's second qubit as
control: |01⟩ ↔ |11⟩.
*/
func CNOTReversed() TwoGate {
	return TwoGate{
		{1, 0, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
	}
}

/*
Kron returns the tensor product a ⊗ b, with a acting on the pair's first
qubit (the high bit of the gate subindex) and b on the second.
*/
func Kron(a, b SingleGate) TwoGate {
	var out TwoGate
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				for l := 0; l < 2; l++ {
					out[i*2+k][j*2+l] = a[i][j] * b[k][l]
				}
			}
		}
	}
	return out
}

// cDense converts the gate into a gonum complex matrix.
func (g TwoGate) cDense() *mat.CDense {
	data := make([]complex128, 16)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			data[i*4+j] = g[i][j]
		}
	}
	return mat.NewCDense(4, 4, data)
}

/*
Mul returns g·h, the gate that applies h first and g second. Composition runs
through gonum so the convolution block builds one dense unitary instead of
replaying its template gate by gate.
*/
func (g TwoGate) Mul(h TwoGate) TwoGate {
	product := mat.NewCDense(4, 4, nil)
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, g.cDense().RawCMatrix(), h.cDense().RawCMatrix(), 0, product.RawCMatrix())

	var out TwoGate
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = product.At(i, j)
		}
	}
	return out
}

// IsUnitary reports whether g†g is the identity within tolerance.
func (g SingleGate) IsUnitary() bool {
	m := mat.NewCDense(2, 2, []complex128{
		g[0][0], g[0][1],
		g[1][0], g[1][1],
	})
	return isUnitary(m, 2)
}

// IsUnitary reports whether g†g is the identity within tolerance.
func (g TwoGate) IsUnitary() bool {
	return isUnitary(g.cDense(), 4)
}

func isUnitary(m *mat.CDense, dim int) bool {
	product := mat.NewCDense(dim, dim, nil)
	cblas128.Gemm(blas.ConjTrans, blas.NoTrans, 1, m.RawCMatrix(), m.RawCMatrix(), 0, product.RawCMatrix())

	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			want := complex128(0)
			if i == j {
				want = 1
			}
			if cmplx.Abs(product.At(i, j)-want) > normTolerance {
				return false
			}
		}
	}
	return true
}
