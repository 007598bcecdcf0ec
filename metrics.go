package qcnn

import (
	"sync"
	"time"
)

/*
Metrics tracks evaluation throughput and the training loss history. The loss
sequence is the observable log the reference procedure produces for post-hoc
inspection: there is no convergence check, only the record.
*/
type Metrics struct {
	mu sync.RWMutex

	EvalCount      int64
	EvalFailures   int64
	TotalEvalTime  time.Duration
	AverageLatency time.Duration

	LossHistory []float64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordEval(start time.Time, success bool) {
	duration := time.Since(start)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.EvalCount++
	m.TotalEvalTime += duration
	m.AverageLatency = m.TotalEvalTime / time.Duration(m.EvalCount)
	if !success {
		m.EvalFailures++
	}
}

// RecordLoss appends one iteration's loss to the history.
func (m *Metrics) RecordLoss(loss float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LossHistory = append(m.LossHistory, loss)
}

// Losses returns a copy of the recorded loss sequence.
func (m *Metrics) Losses() []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	losses := make([]float64, len(m.LossHistory))
	copy(losses, m.LossHistory)
	return losses
}

// ExportMetrics returns a snapshot for external reporting.
func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"eval_count":    m.EvalCount,
		"eval_failures": m.EvalFailures,
		"avg_latency":   m.AverageLatency.Microseconds(),
		"iterations":    len(m.LossHistory),
	}
}
