package qcnn

/*
EvalJob is one circuit evaluation scheduled on the pool. Index addresses the
slot the result lands in, so a batch of jobs maps onto a result slice without
any shared mutable state between evaluations.
*/
type EvalJob struct {
	Index int
	Fn    func() (float64, error)
}

type evalResult struct {
	index int
	value float64
	err   error
}

type poolTask struct {
	job     EvalJob
	results chan<- evalResult
}
