package qcnn

import (
	"log"
	"time"
)

// Worker pulls evaluation tasks off the pool and runs them to completion.
type Worker struct {
	pool *EvalPool
}

func (w *Worker) run() {
	for {
		select {
		case <-w.pool.ctx.Done():
			return
		case task, ok := <-w.pool.tasks:
			if !ok {
				return
			}
			w.process(task)
		}
	}
}

func (w *Worker) process(task poolTask) {
	start := time.Now()
	value, err := task.job.Fn()
	w.pool.metrics.recordEval(start, err == nil)

	if err != nil {
		log.Printf("evaluation %d failed: %v", task.job.Index, err)
	}

	// The results channel is buffered to the batch size, so this never
	// blocks and a taken task always produces a result.
	task.results <- evalResult{index: task.job.Index, value: value, err: err}
}
