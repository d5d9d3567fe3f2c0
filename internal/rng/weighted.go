package rng

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ProbabilityTolerance is how far the sum of a probability vector may drift from 1.0.
const ProbabilityTolerance = 1e-9

// ErrInvalidInput is returned for a malformed weighted-draw configuration.
var ErrInvalidInput = errors.New("invalid weighted draw input")

// Source yields uniform values in [0,1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a time-seeded Source.
func NewSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Validate checks that labels and probs describe a usable distribution.
func Validate(labels []string, probs []float64) error {
	if len(labels) == 0 {
		return fmt.Errorf("%w: no outcomes", ErrInvalidInput)
	}
	if len(labels) != len(probs) {
		return fmt.Errorf("%w: %d outcomes but %d probabilities", ErrInvalidInput, len(labels), len(probs))
	}
	total := 0.0
	for i, p := range probs {
		if p < 0 || math.IsNaN(p) {
			return fmt.Errorf("%w: negative probability %v for %q", ErrInvalidInput, p, labels[i])
		}
		total += p
	}
	if math.Abs(total-1.0) > ProbabilityTolerance {
		return fmt.Errorf("%w: probabilities sum to %v", ErrInvalidInput, total)
	}
	return nil
}

// WeightedDraw picks one label so that label i comes up with probability probs[i].
//
// A uniform r in [0,1) is compared against the running sum of probabilities and
// the first outcome whose cumulative sum reaches r wins. When rounding leaves the
// final sum just below r, the last outcome is returned.
func WeightedDraw(src Source, labels []string, probs []float64) (string, error) {
	if err := Validate(labels, probs); err != nil {
		return "", err
	}
	r := src.Float64()
	cumulative := 0.0
	for i, p := range probs {
		cumulative += p
		if p > 0 && cumulative >= r {
			return labels[i], nil
		}
	}
	return labels[lastPositive(probs)], nil
}

// lastPositive is the index of the last outcome with non-zero weight.
func lastPositive(probs []float64) int {
	for i := len(probs) - 1; i >= 0; i-- {
		if probs[i] > 0 {
			return i
		}
	}
	return len(probs) - 1
}

// Uniform returns an equal-probability vector for n outcomes.
func Uniform(n int) []float64 {
	probs := make([]float64, n)
	for i := range probs {
		probs[i] = 1.0 / float64(n)
	}
	return probs
}

// Normalize rescales non-negative weights so they sum to 1.
func Normalize(weights []float64) ([]float64, error) {
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative weight %v", ErrInvalidInput, w)
		}
		total += w
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: weights sum to zero", ErrInvalidInput)
	}
	probs := make([]float64, len(weights))
	for i, w := range weights {
		probs[i] = w / total
	}
	return probs, nil
}

// Bernoulli reports true with probability p.
func Bernoulli(src Source, p float64) (bool, error) {
	outcome, err := WeightedDraw(src, []string{"success", "failure"}, []float64{p, 1 - p})
	if err != nil {
		return false, err
	}
	return outcome == "success", nil
}
