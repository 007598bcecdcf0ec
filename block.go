package qcnn

// BlockParams is the number of real parameters consumed by one convolution
// block.
const BlockParams = 15

/*
ConvBlock builds the dense 4x4 unitary for the 15-parameter two-qubit
convolution template. The template is expressive enough to realize a general
two-qubit unitary up to global phase:

	Rot(p0,p1,p2) ⊗ Rot(p3,p4,p5)
	CNOT first→second
	RY(p6) on first, RZ(p7) on second
	CNOT second→first
	RY(p8) on first
	CNOT first→second
	Rot(p9,p10,p11) ⊗ Rot(p12,p13,p14)

The block is directional: callers must pass the resulting gate to the qubit
pair in the order the layer schedule specifies. With all parameters zero the
rotations vanish and the three CNOTs collapse to a SWAP.
*/
func ConvBlock(params [BlockParams]float64) TwoGate {
	identity := Rot(0, 0, 0)

	block := Kron(Rot(params[0], params[1], params[2]), Rot(params[3], params[4], params[5]))
	block = CNOT().Mul(block)
	block = Kron(RY(params[6]), RZ(params[7])).Mul(block)
	block = CNOTReversed().Mul(block)
	block = Kron(RY(params[8]), identity).Mul(block)
	block = CNOT().Mul(block)
	block = Kron(Rot(params[9], params[10], params[11]), Rot(params[12], params[13], params[14])).Mul(block)

	return block
}
