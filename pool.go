package qcnn

import (
	"context"
	"fmt"
	"sync"

	"github.com/theapemachine/errnie"
)

/*
EvalPool runs circuit evaluations across a fixed set of workers. Per-example
simulations within a mini-batch are embarrassingly parallel: each evaluation
owns its own state vector and only reads the shared parameter vector, so the
pool can fan a batch out and join before the optimizer's single mutation per
iteration.

The pool is intentionally static: no scaling, no retries, no backpressure.
The pipeline is a bounded, fixed-iteration computation, and a failed
evaluation is a bug to surface, not a condition to recover from.
*/
type EvalPool struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	tasks   chan poolTask
	metrics *Metrics
	workers int
}

// NewEvalPool starts a pool with the given number of workers.
func NewEvalPool(ctx context.Context, workers int) *EvalPool {
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &EvalPool{
		ctx:     ctx,
		cancel:  cancel,
		tasks:   make(chan poolTask, workers*4),
		metrics: NewMetrics(),
		workers: workers,
	}

	for i := 0; i < workers; i++ {
		worker := &Worker{pool: p}
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			worker.run()
		}()
	}

	errnie.Info("EvalPool started with %d workers", workers)
	return p
}

// Workers returns the pool size.
func (p *EvalPool) Workers() int {
	return p.workers
}

// Metrics exposes the pool's evaluation metrics.
func (p *EvalPool) Metrics() *Metrics {
	return p.metrics
}

/*
Map submits every job, gathers all results into out by job index, and returns
the first evaluation error if any occurred. The gather is the barrier the
training loop relies on: no parameter update happens until every result is in.
*/
func (p *EvalPool) Map(jobs []EvalJob, out []float64) error {
	// Buffered to the job count so workers never block on delivery, even
	// when the pool is shutting down mid-batch.
	results := make(chan evalResult, len(jobs))

	submitted := 0
	for _, job := range jobs {
		if job.Index < 0 || job.Index >= len(out) {
			return fmt.Errorf("%w: job index %d outside result slice of length %d", ErrInvalidInput, job.Index, len(out))
		}
		if err := p.ctx.Err(); err != nil {
			return err
		}
		select {
		case p.tasks <- poolTask{job: job, results: results}:
			submitted++
		case <-p.ctx.Done():
			return p.ctx.Err()
		}
	}

	var firstErr error
	for i := 0; i < submitted; i++ {
		select {
		case r := <-results:
			if r.err != nil {
				if firstErr == nil {
					firstErr = r.err
				}
				continue
			}
			out[r.index] = r.value
		case <-p.ctx.Done():
			return p.ctx.Err()
		}
	}

	return firstErr
}

// Close stops the workers and waits for them to drain.
func (p *EvalPool) Close() {
	if p == nil {
		return
	}
	p.cancel()
	p.wg.Wait()
	close(p.tasks)
}
