package qcnn

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

/*
Predictions fans the batch out over the pool and gathers one expectation
value per example. The parameter vector is only read during the batch, so the
same slice is safely shared by every worker.
*/
func (c *Circuit) Predictions(params []float64, batch []Example, pool *EvalPool) ([]float64, error) {
	if len(batch) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrInvalidInput)
	}

	jobs := make([]EvalJob, len(batch))
	for i, ex := range batch {
		features := ex.Features
		jobs[i] = EvalJob{
			Index: i,
			Fn: func() (float64, error) {
				return c.Run(features, params)
			},
		}
	}

	out := make([]float64, len(batch))
	if err := pool.Map(jobs, out); err != nil {
		return nil, err
	}
	return out, nil
}

/*
Loss is the mean squared error between the circuit's expectation values and
the integer class labels, averaged over the batch.
*/
func (c *Circuit) Loss(params []float64, batch []Example, pool *EvalPool) (float64, error) {
	preds, err := c.Predictions(params, batch, pool)
	if err != nil {
		return 0, err
	}

	residuals := make([]float64, len(batch))
	for i, ex := range batch {
		residuals[i] = preds[i] - float64(ex.Label)
	}
	return floats.Dot(residuals, residuals) / float64(len(batch)), nil
}
