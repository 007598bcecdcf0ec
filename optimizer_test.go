package qcnn

import (
	"context"
	"math"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func smallCircuit() *Circuit {
	return &Circuit{
		Qubits:   2,
		Schedule: LayerSchedule{{{0, 1}}},
		Readout:  1,
	}
}

func smallBatch(rng *rand.Rand) []Example {
	batch := make([]Example, 4)
	for i := range batch {
		features := make([]float64, 4)
		for j := range features {
			features[j] = rng.Float64() + 0.05
		}
		batch[i] = Example{Features: features, Label: i % 2}
	}
	return batch
}

func TestGradient(t *testing.T) {
	Convey("Given the parameter-shift gradient", t, func() {
		pool := NewEvalPool(context.Background(), 4)
		defer pool.Close()

		circuit := smallCircuit()
		rng := rand.New(rand.NewSource(17))
		batch := smallBatch(rng)
		params := randomParams(circuit.ParamCount(), rng)

		Convey("It should match a central finite difference of the loss", func() {
			grad, _, err := circuit.Gradient(params, batch, pool)
			So(err, ShouldBeNil)
			So(len(grad), ShouldEqual, len(params))

			const eps = 1e-5
			for k := range params {
				shifted := make([]float64, len(params))

				copy(shifted, params)
				shifted[k] += eps
				plus, err := circuit.Loss(shifted, batch, pool)
				So(err, ShouldBeNil)

				copy(shifted, params)
				shifted[k] -= eps
				minus, err := circuit.Loss(shifted, batch, pool)
				So(err, ShouldBeNil)

				fd := (plus - minus) / (2 * eps)
				So(grad[k], ShouldAlmostEqual, fd, 1e-4)
			}
		})

		Convey("It should match a finite difference when layers share parameters across pairs", func() {
			// The full schedule reuses each layer's slice at up to 8
			// pairs, so every parameter enters multiple gates. The
			// per-occurrence shifts must sum to the true derivative.
			full := NewCircuit()
			fullRng := rand.New(rand.NewSource(31))

			fullBatch := make([]Example, 2)
			for i := range fullBatch {
				features := make([]float64, full.FeatureLen())
				for j := range features {
					features[j] = fullRng.Float64() + 0.05
				}
				fullBatch[i] = Example{Features: features, Label: i % 2}
			}
			fullParams := randomParams(full.ParamCount(), fullRng)

			grad, _, err := full.Gradient(fullParams, fullBatch, pool)
			So(err, ShouldBeNil)
			So(len(grad), ShouldEqual, 45)

			const eps = 1e-5
			for k := range fullParams {
				shifted := make([]float64, len(fullParams))

				copy(shifted, fullParams)
				shifted[k] += eps
				plus, err := full.Loss(shifted, fullBatch, pool)
				So(err, ShouldBeNil)

				copy(shifted, fullParams)
				shifted[k] -= eps
				minus, err := full.Loss(shifted, fullBatch, pool)
				So(err, ShouldBeNil)

				fd := (plus - minus) / (2 * eps)
				So(grad[k], ShouldAlmostEqual, fd, 1e-4)
			}
		})

		Convey("The reported loss should match Loss at the same point", func() {
			_, gradLoss, err := circuit.Gradient(params, batch, pool)
			So(err, ShouldBeNil)

			loss, err := circuit.Loss(params, batch, pool)
			So(err, ShouldBeNil)
			So(gradLoss, ShouldAlmostEqual, loss, 1e-12)
		})

		Convey("An empty batch should be rejected", func() {
			_, _, err := circuit.Gradient(params, nil, pool)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestNesterov(t *testing.T) {
	Convey("Given the Nesterov optimizer", t, func() {
		pool := NewEvalPool(context.Background(), 4)
		defer pool.Close()

		circuit := smallCircuit()
		rng := rand.New(rand.NewSource(23))
		batch := smallBatch(rng)

		Convey("With zero momentum it should reduce to plain gradient descent", func() {
			params := randomParams(circuit.ParamCount(), rng)
			grad, _, err := circuit.Gradient(params, batch, pool)
			So(err, ShouldBeNil)

			expected := make([]float64, len(params))
			for i := range params {
				expected[i] = params[i] - 0.05*grad[i]
			}

			opt := NewNesterov(0.05, 0)
			_, err = opt.Step(circuit, params, batch, pool)
			So(err, ShouldBeNil)

			for i := range params {
				So(params[i], ShouldAlmostEqual, expected[i], 1e-12)
			}
		})

		Convey("Repeated steps on a fixed batch should lower the loss", func() {
			params := randomParams(circuit.ParamCount(), rng)
			opt := NewNesterov(0.01, 0.9)

			first, err := opt.Step(circuit, params, batch, pool)
			So(err, ShouldBeNil)

			var last float64
			for i := 0; i < 40; i++ {
				last, err = opt.Step(circuit, params, batch, pool)
				So(err, ShouldBeNil)
				So(math.IsNaN(last), ShouldBeFalse)
			}

			So(last, ShouldBeLessThan, first)
		})
	})
}
