// Package svm implements a multi-class linear support vector machine.
//
// Multi-class decisions use one-vs-one voting over binary machines. When the model is fitted
// with probability calibration, every binary machine carries a Platt sigmoid and pairwise
// probabilities are coupled into one distribution over classes.
package svm

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrNoProbability is returned by Estimate when the model was fitted without calibration
var ErrNoProbability = errors.New("model was trained without probability estimates")

// Model is a fitted one-vs-one linear SVM. It is immutable after Train returns and safe
// for concurrent use. Fields are exported for gob encoding.
type Model struct {
	NumClasses  int
	NumFeatures int
	Machines    []BinaryMachine
}

// BinaryMachine separates class Positive (decision > 0) from class Negative.
type BinaryMachine struct {
	Positive       int
	Negative       int
	Weights        []float64
	Bias           float64
	SupportVectors int
	Sigmoid        *Sigmoid
}

// Sigmoid maps a decision value f to P(positive | f) = 1 / (1 + exp(A*f + B)).
type Sigmoid struct {
	A float64
	B float64
}

// Decision returns the signed distance-like score of x for this machine
func (b *BinaryMachine) Decision(x []float64) float64 {
	return floats.Dot(b.Weights, x) + b.Bias
}

// Probability returns P(positive | x). It requires a fitted sigmoid.
func (b *BinaryMachine) Probability(x []float64) float64 {
	return b.Sigmoid.Predict(b.Decision(x))
}

// Predict evaluates the sigmoid at decision value f
func (s *Sigmoid) Predict(f float64) float64 {
	fApB := f*s.A + s.B
	if fApB >= 0 {
		return math.Exp(-fApB) / (1 + math.Exp(-fApB))
	}
	return 1 / (1 + math.Exp(fApB))
}

// Classify returns the class index of x by majority vote over the binary machines.
// Ties go to the lowest class index.
func (m *Model) Classify(x []float64) (int, error) {
	if err := m.check(x); err != nil {
		return 0, err
	}

	votes := make([]int, m.NumClasses)
	for i := range m.Machines {
		machine := &m.Machines[i]
		if machine.Decision(x) > 0 {
			votes[machine.Positive]++
		} else {
			votes[machine.Negative]++
		}
	}

	best := 0
	for c := 1; c < m.NumClasses; c++ {
		if votes[c] > votes[best] {
			best = c
		}
	}
	return best, nil
}

// SupportsProbability reports whether Estimate can be used
func (m *Model) SupportsProbability() bool {
	if len(m.Machines) == 0 {
		return false
	}
	for i := range m.Machines {
		if m.Machines[i].Sigmoid == nil {
			return false
		}
	}
	return true
}

// Estimate returns per-class probabilities for x, summing to one.
func (m *Model) Estimate(x []float64) ([]float64, error) {
	if !m.SupportsProbability() {
		return nil, ErrNoProbability
	}
	if err := m.check(x); err != nil {
		return nil, err
	}

	r := make([][]float64, m.NumClasses)
	for i := range r {
		r[i] = make([]float64, m.NumClasses)
	}
	for i := range m.Machines {
		machine := &m.Machines[i]
		p := clamp(machine.Probability(x), minProbability, 1-minProbability)
		r[machine.Positive][machine.Negative] = p
		r[machine.Negative][machine.Positive] = 1 - p
	}

	return coupleProbabilities(r), nil
}

func (m *Model) check(x []float64) error {
	if len(m.Machines) == 0 {
		return errors.New("model not trained")
	}
	if len(x) != m.NumFeatures {
		return fmt.Errorf("expected %d features, got %d", m.NumFeatures, len(x))
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("feature %d is not finite", i)
		}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
