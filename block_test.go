package qcnn

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func randomBlockParams(rng *rand.Rand) [BlockParams]float64 {
	var params [BlockParams]float64
	for i := range params {
		params[i] = rng.Float64() * 2 * math.Pi
	}
	return params
}

func TestConvBlock(t *testing.T) {
	Convey("Given the 15-parameter convolution block", t, func() {
		rng := rand.New(rand.NewSource(7))

		Convey("It should be unitary for any parameter vector", func() {
			for trial := 0; trial < 20; trial++ {
				block := ConvBlock(randomBlockParams(rng))
				So(block.IsUnitary(), ShouldBeTrue)
			}
		})

		Convey("It should be deterministic for identical parameters", func() {
			params := randomBlockParams(rng)
			a := ConvBlock(params)
			b := ConvBlock(params)
			So(a, ShouldResemble, b)
		})

		Convey("With all parameters zero it should reduce to a SWAP", func() {
			block := ConvBlock([BlockParams]float64{})
			swap := TwoGate{
				{1, 0, 0, 0},
				{0, 0, 1, 0},
				{0, 1, 0, 0},
				{0, 0, 0, 1},
			}
			for i := 0; i < 4; i++ {
				for j := 0; j < 4; j++ {
					So(cmplx.Abs(block[i][j]-swap[i][j]), ShouldBeLessThan, 1e-12)
				}
			}
		})

		Convey("It should be directional in its parameters", func() {
			params := randomBlockParams(rng)
			swapped := params
			swapped[0], swapped[3] = swapped[3], swapped[0]

			a := ConvBlock(params)
			b := ConvBlock(swapped)

			var maxDiff float64
			for i := 0; i < 4; i++ {
				for j := 0; j < 4; j++ {
					if d := cmplx.Abs(a[i][j] - b[i][j]); d > maxDiff {
						maxDiff = d
					}
				}
			}
			So(maxDiff, ShouldBeGreaterThan, 1e-6)
		})
	})
}
