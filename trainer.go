package qcnn

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/theapemachine/errnie"
)

/*
Trainer drives the mini-batch optimization loop. The procedure reproduces the
reference exactly: a fixed iteration budget, batches sampled with replacement
from a seeded generator, one Nesterov step per iteration, and no convergence
check beyond the budget. The loss history is recorded for post-hoc
inspection instead.
*/
type Trainer struct {
	config    *Config
	circuit   *Circuit
	optimizer *Nesterov
	pool      *EvalPool
	rng       *rand.Rand
}

// TrainResult is the trained parameter vector plus the per-iteration loss
// sequence.
type TrainResult struct {
	Params []float64
	Losses []float64
}

/*
NewTrainer wires the circuit, optimizer and evaluation pool from the config.
The caller owns the pool's lifetime through Close.
*/
func NewTrainer(ctx context.Context, cfg *Config) *Trainer {
	if cfg == nil {
		cfg = NewConfig()
	}

	circuit := &Circuit{
		Qubits:   cfg.Qubits,
		Schedule: DefaultSchedule(),
		Readout:  cfg.Readout,
	}

	return &Trainer{
		config:    cfg,
		circuit:   circuit,
		optimizer: NewNesterov(cfg.LearningRate, cfg.Momentum),
		pool:      NewEvalPool(ctx, cfg.Workers),
		rng:       rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Circuit returns the ansatz the trainer optimizes.
func (t *Trainer) Circuit() *Circuit {
	return t.circuit
}

// Pool returns the evaluation pool, so callers can reuse it for inference.
func (t *Trainer) Pool() *EvalPool {
	return t.pool
}

// Close releases the evaluation pool.
func (t *Trainer) Close() {
	t.pool.Close()
}

// InitParams draws the initial parameter vector uniformly from [0, 2π).
func (t *Trainer) InitParams() []float64 {
	params := make([]float64, t.circuit.ParamCount())
	for i := range params {
		params[i] = t.rng.Float64() * 2 * math.Pi
	}
	return params
}

/*
Train runs the full loop and returns the trained parameters with the loss
history. The parameter vector is created once, mutated in place exactly once
per iteration, and frozen on return. A non-finite loss aborts with
ErrDiverged; the reference procedure has no clipping and no recovery.
*/
func (t *Trainer) Train(trainSet []Example) (*TrainResult, error) {
	if err := ValidateDataset(trainSet, t.circuit.Qubits); err != nil {
		return nil, err
	}
	if len(trainSet) == 0 {
		return nil, fmt.Errorf("%w: empty training set", ErrInvalidInput)
	}

	params := t.InitParams()
	losses := make([]float64, 0, t.config.Iterations)

	errnie.Info(
		"training: %d iterations, batch %d, %d parameters, seed %d",
		t.config.Iterations, t.config.BatchSize, len(params), t.config.Seed,
	)

	for iter := 0; iter < t.config.Iterations; iter++ {
		batch := t.sampleBatch(trainSet)

		loss, err := t.optimizer.Step(t.circuit, params, batch, t.pool)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iter, err)
		}
		if math.IsNaN(loss) || math.IsInf(loss, 0) {
			return nil, fmt.Errorf("%w: loss %v at iteration %d", ErrDiverged, loss, iter)
		}

		losses = append(losses, loss)
		t.pool.metrics.RecordLoss(loss)

		if (iter+1)%10 == 0 {
			errnie.Info("iteration %d: loss %.6f", iter+1, loss)
		}
	}

	return &TrainResult{Params: params, Losses: losses}, nil
}

// sampleBatch draws BatchSize examples with replacement, as the reference
// procedure does.
func (t *Trainer) sampleBatch(trainSet []Example) []Example {
	batch := make([]Example, t.config.BatchSize)
	for i := range batch {
		batch[i] = trainSet[t.rng.Intn(len(trainSet))]
	}
	return batch
}
