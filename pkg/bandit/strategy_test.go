package bandit

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/exp/rand"
)

func sumOf(probabilities []float64) float64 {
	sum := 0.0
	for _, p := range probabilities {
		sum += p
	}
	return sum
}

func TestSoftmax(t *testing.T) {
	Convey("While using the softmax choice rule", t, func() {
		beliefs := []float64{0.2, 0.5, 0.8}

		Convey("Probabilities should sum to one", func() {
			So(sumOf(Softmax(beliefs, 0.5)), ShouldAlmostEqual, 1)
		})

		Convey("Higher beliefs should get higher probabilities", func() {
			probabilities := Softmax(beliefs, 0.5)
			So(probabilities[0], ShouldBeLessThan, probabilities[1])
			So(probabilities[1], ShouldBeLessThan, probabilities[2])
		})

		Convey("A higher strategy level should explore more", func() {
			exploitative := Softmax(beliefs, 0.25)
			explorative := Softmax(beliefs, 1.0)
			So(explorative[2], ShouldBeLessThan, exploitative[2])
			So(explorative[0], ShouldBeGreaterThan, exploitative[0])
		})

		Convey("A strategy level of zero should degenerate to greedy", func() {
			So(Softmax(beliefs, 0), ShouldResemble, []float64{0, 0, 1})
		})

		Convey("Equal beliefs should give a uniform distribution", func() {
			probabilities := Softmax([]float64{0.5, 0.5, 0.5, 0.5}, 0.5)
			for _, p := range probabilities {
				So(p, ShouldAlmostEqual, 0.25)
			}
		})
	})
}

func TestGreedy(t *testing.T) {
	Convey("While using the greedy choice rule", t, func() {
		Convey("All probability should land on the highest belief", func() {
			So(Greedy([]float64{0.1, 0.9, 0.3}, 0), ShouldResemble, []float64{0, 1, 0})
		})

		Convey("Ties should break towards the lowest index", func() {
			So(Greedy([]float64{0.5, 0.5}, 0), ShouldResemble, []float64{1, 0})
		})
	})
}

func TestEpsilonGreedy(t *testing.T) {
	Convey("While using the epsilon-greedy choice rule", t, func() {
		beliefs := []float64{0.1, 0.9}

		Convey("Probabilities should sum to one", func() {
			So(sumOf(EpsilonGreedy(beliefs, 0.2)), ShouldAlmostEqual, 1)
		})

		Convey("Epsilon should be split uniformly across the arms", func() {
			probabilities := EpsilonGreedy(beliefs, 0.2)
			So(probabilities[0], ShouldAlmostEqual, 0.1)
			So(probabilities[1], ShouldAlmostEqual, 0.9)
		})

		Convey("Epsilon of one should be fully uniform", func() {
			probabilities := EpsilonGreedy(beliefs, 1)
			So(probabilities[0], ShouldAlmostEqual, 0.5)
			So(probabilities[1], ShouldAlmostEqual, 0.5)
		})
	})
}

func TestSimpleBelief(t *testing.T) {
	Convey("While updating beliefs from trial history", t, func() {
		Convey("Untried arms should be believed to pay off half the time", func() {
			beliefs := SimpleBelief([]float64{0.5, 0.5}, []int{0, 0}, []int{0, 0})
			So(beliefs, ShouldResemble, []float64{0.5, 0.5})
		})

		Convey("The first trial should be averaged in as if it were the third", func() {
			beliefs := SimpleBelief([]float64{0.5, 0.5}, []int{1, 1}, []int{1, 0})
			So(beliefs[0], ShouldAlmostEqual, 2.0/3.0)
			So(beliefs[1], ShouldAlmostEqual, 1.0/3.0)
		})

		Convey("Beliefs should never reach 0 or 1", func() {
			beliefs := SimpleBelief([]float64{0.5}, []int{1000}, []int{1000})
			So(beliefs[0], ShouldBeLessThan, 1)
			beliefs = SimpleBelief([]float64{0.5}, []int{1000}, []int{0})
			So(beliefs[0], ShouldBeGreaterThan, 0)
		})
	})
}

func TestRandomShock(t *testing.T) {
	Convey("While applying turbulence", t, func() {
		draw := BetaPayoff(2, 2)

		Convey("Zero turbulence should never change the payoffs", func() {
			rng := rand.New(rand.NewSource(3))
			payoffs := []float64{0.1, 0.2, 0.3}
			for i := 0; i < 100; i++ {
				RandomShock(payoffs, draw, 0, rng)
			}
			So(payoffs, ShouldResemble, []float64{0.1, 0.2, 0.3})
		})

		Convey("Certain turbulence should re-draw roughly half the arms", func() {
			rng := rand.New(rand.NewSource(3))
			payoffs := make([]float64, 1000)
			original := make([]float64, 1000)
			copy(original, payoffs)

			RandomShock(payoffs, draw, 1, rng)

			redrawn := 0
			for i := range payoffs {
				if payoffs[i] != original[i] {
					redrawn++
				}
			}
			So(redrawn, ShouldBeBetween, 400, 600)
		})
	})
}
