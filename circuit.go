package qcnn

import "fmt"

/*
QubitPair is an ordered pair of qubit indices a convolution block acts on.
Order matters: the block template is directional.
*/
type QubitPair struct {
	First  int
	Second int
}

/*
LayerSchedule lists, per convolution layer, the qubit pairs the layer's block
is applied to, in application order. Each layer consumes one contiguous
15-parameter slice. Pooling is a property of the schedule, not an operation:
qubits absent from later layers are simply never acted on again.
*/
type LayerSchedule [][]QubitPair

/*
DefaultSchedule returns the 8-qubit QCNN topology:

  - layer 1: all nearest-neighbor pairs with periodic boundary, the
    wraparound pair first, then the even-offset pairs, then the odd-offset
    pairs. Pairs sharing a qubit do not commute, so the order is fixed.
  - layer 2: the sparser long-range pairs over the surviving qubits.
  - layer 3: the final pair feeding the readout qubit.
*/
func DefaultSchedule() LayerSchedule {
	return LayerSchedule{
		{
			{0, 7},
			{0, 1}, {2, 3}, {4, 5}, {6, 7},
			{1, 2}, {3, 4}, {5, 6},
		},
		{
			{0, 6}, {0, 2}, {4, 6}, {2, 4},
		},
		{
			{0, 4},
		},
	}
}

/*
Circuit is the explicit simulation context: register size, layer schedule,
and the measured qubit. It replaces any notion of a process-wide device
object; construct one and thread it through all calls. A Circuit is immutable
after construction and safe for concurrent Run calls, since every evaluation
owns its own state vector.
*/
type Circuit struct {
	Qubits   int
	Schedule LayerSchedule
	Readout  int
}

/*
NewCircuit returns the reference configuration: 8 qubits, the default
convolution/pooling schedule, Pauli-Z readout on qubit 4.
*/
func NewCircuit() *Circuit {
	return &Circuit{
		Qubits:   8,
		Schedule: DefaultSchedule(),
		Readout:  4,
	}
}

// ParamCount returns the length of the parameter vector the schedule
// consumes: 15 per convolution layer.
func (c *Circuit) ParamCount() int {
	return BlockParams * len(c.Schedule)
}

// FeatureLen returns the required feature vector length, 2^n.
func (c *Circuit) FeatureLen() int {
	return 1 << c.Qubits
}

func (c *Circuit) validate(features, params []float64) error {
	if len(features) != c.FeatureLen() {
		return fmt.Errorf("%w: feature length %d, want %d", ErrInvalidInput, len(features), c.FeatureLen())
	}
	if len(params) != c.ParamCount() {
		return fmt.Errorf("%w: parameter length %d, want %d", ErrInvalidInput, len(params), c.ParamCount())
	}
	return nil
}

/*
Run composes the full pipeline: amplitude embedding, the scheduled
convolution layers, and the Pauli-Z measurement on the readout qubit. It is a
pure function from (features, parameters) to one real number in [-1, 1];
identical inputs produce bit-for-bit identical output.
*/
func (c *Circuit) Run(features, params []float64) (float64, error) {
	return c.run(features, params, nil)
}

/*
blockOverride substitutes a prebuilt block at exactly one scheduled
occurrence, identified by layer and pair position. The gradient uses this to
shift a parameter at a single gate occurrence while every other occurrence
keeps the unshifted layer block.
*/
type blockOverride struct {
	layer int
	pair  int
	block TwoGate
}

func (c *Circuit) run(features, params []float64, override *blockOverride) (float64, error) {
	if err := c.validate(features, params); err != nil {
		return 0, err
	}

	sv, err := AmplitudeEmbed(features)
	if err != nil {
		return 0, err
	}

	for layer, pairs := range c.Schedule {
		var slice [BlockParams]float64
		copy(slice[:], params[layer*BlockParams:(layer+1)*BlockParams])
		block := ConvBlock(slice)

		for pairIdx, pair := range pairs {
			gate := block
			if override != nil && override.layer == layer && override.pair == pairIdx {
				gate = override.block
			}
			if err := sv.ApplyTwo(gate, pair.First, pair.Second); err != nil {
				return 0, fmt.Errorf("layer %d pair (%d,%d): %w", layer+1, pair.First, pair.Second, err)
			}
		}
	}

	return sv.ExpectationZ(c.Readout)
}
