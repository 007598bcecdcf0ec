package qcnn

import (
	"fmt"
	"math"
)

// shift is the parameter-shift offset. For rotation-generator gates the
// exact derivative of the expectation is [f(θ+π/2) − f(θ−π/2)] / 2.
const shift = math.Pi / 2

// shiftOccurrence identifies one scheduled gate a shifted parameter enters:
// the layer, the pair position within the layer, and the global parameter
// index the occurrence contributes to.
type shiftOccurrence struct {
	layer int
	pair  int
	param int
}

/*
Gradient computes the exact gradient of the batch MSE at params via the
parameter-shift rule, avoiding any autodiff infrastructure. A layer's
15-parameter slice is applied at every pair in that layer, so each parameter
enters one rotation gate per scheduled pair; the shift rule is exact per gate
occurrence, not per shared scalar. Each occurrence is therefore shifted
individually, with every other occurrence kept at the unshifted block, and
the per-occurrence derivatives sum into the parameter's gradient by the
product rule: two forward simulations per occurrence per example, plus one
base pass for the residuals. All evaluations run through the pool; the
gather is the join point.

Returns the gradient and the loss at the same point.
*/
func (c *Circuit) Gradient(params []float64, batch []Example, pool *EvalPool) ([]float64, float64, error) {
	if len(batch) == 0 {
		return nil, 0, fmt.Errorf("%w: empty batch", ErrInvalidInput)
	}

	nParams := len(params)
	nBatch := len(batch)

	var occurrences []shiftOccurrence
	for layer, pairs := range c.Schedule {
		for pairIdx := range pairs {
			for p := 0; p < BlockParams; p++ {
				occurrences = append(occurrences, shiftOccurrence{
					layer: layer,
					pair:  pairIdx,
					param: layer*BlockParams + p,
				})
			}
		}
	}

	// One flat result slice: base predictions first, then the +π/2 and
	// -π/2 passes for each gate occurrence.
	out := make([]float64, nBatch*(1+2*len(occurrences)))
	jobs := make([]EvalJob, 0, len(out))

	for i, ex := range batch {
		features := ex.Features
		jobs = append(jobs, EvalJob{
			Index: i,
			Fn: func() (float64, error) {
				return c.Run(features, params)
			},
		})
	}

	for o, occ := range occurrences {
		for s, sign := range []float64{shift, -shift} {
			var slice [BlockParams]float64
			copy(slice[:], params[occ.layer*BlockParams:(occ.layer+1)*BlockParams])
			slice[occ.param-occ.layer*BlockParams] += sign

			override := &blockOverride{
				layer: occ.layer,
				pair:  occ.pair,
				block: ConvBlock(slice),
			}

			for i, ex := range batch {
				features := ex.Features
				jobs = append(jobs, EvalJob{
					Index: nBatch + (2*o+s)*nBatch + i,
					Fn: func() (float64, error) {
						return c.run(features, params, override)
					},
				})
			}
		}
	}

	if err := pool.Map(jobs, out); err != nil {
		return nil, 0, err
	}

	base := out[:nBatch]
	var loss float64
	for i, ex := range batch {
		r := base[i] - float64(ex.Label)
		loss += r * r
	}
	loss /= float64(nBatch)

	grad := make([]float64, nParams)
	for o, occ := range occurrences {
		plus := out[nBatch+(2*o)*nBatch : nBatch+(2*o+1)*nBatch]
		minus := out[nBatch+(2*o+1)*nBatch : nBatch+(2*o+2)*nBatch]

		var sum float64
		for i, ex := range batch {
			// d/dθ of (f−y)² is 2(f−y)·f′ with f′ = (f₊ − f₋)/2 for
			// this occurrence alone.
			sum += (base[i] - float64(ex.Label)) * (plus[i] - minus[i])
		}
		grad[occ.param] += sum / float64(nBatch)
	}

	return grad, loss, nil
}

/*
Nesterov is momentum-accelerated stochastic gradient descent with look-ahead:
the gradient is taken at the momentum-shifted point, then the velocity and
parameters update. The reference configuration uses learning rate 0.01 and
momentum 0.9.
*/
type Nesterov struct {
	LearningRate float64
	Momentum     float64

	velocity []float64
}

// NewNesterov returns the optimizer in the reference configuration.
func NewNesterov(learningRate, momentum float64) *Nesterov {
	return &Nesterov{
		LearningRate: learningRate,
		Momentum:     momentum,
	}
}

/*
Step performs one optimization update in place:

	v ← m·v + lr·∇L(θ − m·v)
	θ ← θ − v

The returned loss is evaluated at θ before the update, so the recorded loss
sequence tracks the parameters the caller actually held at each iteration.
*/
func (o *Nesterov) Step(c *Circuit, params []float64, batch []Example, pool *EvalPool) (float64, error) {
	if o.velocity == nil {
		o.velocity = make([]float64, len(params))
	}
	if len(o.velocity) != len(params) {
		return 0, fmt.Errorf("%w: parameter length changed mid-training (%d -> %d)", ErrInvalidInput, len(o.velocity), len(params))
	}

	lookahead := make([]float64, len(params))
	for i := range params {
		lookahead[i] = params[i] - o.Momentum*o.velocity[i]
	}

	grad, _, err := c.Gradient(lookahead, batch, pool)
	if err != nil {
		return 0, err
	}

	loss, err := c.Loss(params, batch, pool)
	if err != nil {
		return 0, err
	}

	for i := range params {
		o.velocity[i] = o.Momentum*o.velocity[i] + o.LearningRate*grad[i]
		params[i] -= o.velocity[i]
	}

	return loss, nil
}
