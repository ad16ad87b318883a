// Package stats summarizes self-play results.
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidenceInterval / 100)) / 2
	return dist.Quantile(area)
}

// Proportion is a count of wins out of a number of games.
type Proportion struct {
	Successes int
	Trials    int
}

func (p Proportion) Rate() float64 {
	if p.Trials == 0 {
		return 0
	}
	return float64(p.Successes) / float64(p.Trials)
}

func (p Proportion) StandardError() float64 {
	if p.Trials == 0 {
		return 0
	}
	r := p.Rate()
	return math.Sqrt(r * (1 - r) / float64(p.Trials))
}

// ConfidenceInterval is the normal approximation to the interval around
// Rate, clamped to [0, 1].
func (p Proportion) ConfidenceInterval(pct float64) (float64, float64) {
	half := ZVal(pct) * p.StandardError()
	r := p.Rate()
	return math.Max(0, r-half), math.Min(1, r+half)
}

func (p Proportion) String() string {
	lo, hi := p.ConfidenceInterval(95)
	return fmt.Sprintf("%.3f%% (95%% CI %.3f%% - %.3f%%)", 100*p.Rate(), 100*lo, 100*hi)
}
