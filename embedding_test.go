package qcnn

import (
	"math"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAmplitudeEmbed(t *testing.T) {
	Convey("Given the amplitude encoder", t, func() {
		Convey("Any nonzero vector should embed to a unit-norm state", func() {
			rng := rand.New(rand.NewSource(3))
			features := make([]float64, 16)
			for i := range features {
				features[i] = rng.NormFloat64()
			}

			sv, err := AmplitudeEmbed(features)
			So(err, ShouldBeNil)
			So(sv.Qubits(), ShouldEqual, 4)
			So(sv.Norm(), ShouldAlmostEqual, 1.0, 1e-12)
		})

		Convey("Amplitudes should stay proportional to the input", func() {
			features := []float64{3, 0, 4, 0}
			sv, err := AmplitudeEmbed(features)
			So(err, ShouldBeNil)

			amps := sv.Amplitudes()
			So(real(amps[0]), ShouldAlmostEqual, 0.6, 1e-12)
			So(real(amps[2]), ShouldAlmostEqual, 0.8, 1e-12)
			So(imag(amps[0]), ShouldEqual, 0.0)
			So(imag(amps[2]), ShouldEqual, 0.0)
		})

		Convey("The embedding should be deterministic", func() {
			features := []float64{1, 2, 3, 4}
			a, err := AmplitudeEmbed(features)
			So(err, ShouldBeNil)
			b, err := AmplitudeEmbed(features)
			So(err, ShouldBeNil)
			So(a.Amplitudes(), ShouldResemble, b.Amplitudes())
		})

		Convey("A zero-norm vector should be rejected", func() {
			_, err := AmplitudeEmbed(make([]float64, 8))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "zero-norm")
		})

		Convey("A non-power-of-two length should be rejected", func() {
			_, err := AmplitudeEmbed([]float64{1, 2, 3})
			So(err, ShouldNotBeNil)

			_, err = AmplitudeEmbed(nil)
			So(err, ShouldNotBeNil)
		})

		Convey("A negative vector should normalize by magnitude", func() {
			sv, err := AmplitudeEmbed([]float64{-1, -1, -1, -1})
			So(err, ShouldBeNil)
			So(sv.Norm(), ShouldAlmostEqual, 1.0, 1e-12)
			So(real(sv.Amplitudes()[0]), ShouldAlmostEqual, -0.5, 1e-12)
			So(math.Abs(real(sv.Amplitudes()[3])), ShouldAlmostEqual, 0.5, 1e-12)
		})
	})
}
