package qcnn

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConfig(t *testing.T) {
	t.Setenv("QCNN_ITERATIONS", "7")
	t.Setenv("QCNN_SEED", "99")

	Convey("Given the reference defaults", t, func() {
		cfg := NewConfig()
		So(cfg.Qubits, ShouldEqual, 8)
		So(cfg.Readout, ShouldEqual, 4)
		So(cfg.Iterations, ShouldEqual, 100)
		So(cfg.BatchSize, ShouldEqual, 25)
		So(cfg.LearningRate, ShouldEqual, 0.01)
		So(cfg.Momentum, ShouldEqual, 0.9)
		So(cfg.Workers, ShouldBeGreaterThan, 0)
	})

	Convey("Given environment overrides", t, func() {
		cfg := LoadConfig()
		So(cfg.Iterations, ShouldEqual, 7)
		So(cfg.Seed, ShouldEqual, int64(99))

		// Untouched fields keep the reference defaults.
		So(cfg.BatchSize, ShouldEqual, 25)
		So(cfg.LearningRate, ShouldEqual, 0.01)
	})
}
