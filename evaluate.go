package qcnn

import "math"

/*
Accuracy runs the circuit on every test example with frozen parameters and
returns the fraction classified correctly. A prediction counts as correct
when it lands within 0.5 of its integer label, the midpoint between the two
label values. No parameter updates happen here; the function is pure.
*/
func (c *Circuit) Accuracy(params []float64, testSet []Example, pool *EvalPool) (float64, error) {
	if err := ValidateDataset(testSet, c.Qubits); err != nil {
		return 0, err
	}

	preds, err := c.Predictions(params, testSet, pool)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i, ex := range testSet {
		if math.Abs(preds[i]-float64(ex.Label)) < 0.5 {
			correct++
		}
	}

	return float64(correct) / float64(len(testSet)), nil
}
