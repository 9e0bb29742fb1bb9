package svm

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Params controls training
type Params struct {
	// C is the hinge-loss penalty; larger values fit the training data harder.
	C float64
	// MaxIter bounds the number of passes over the data per binary machine.
	MaxIter int
	// Tolerance is the stopping threshold on the projected gradient spread.
	Tolerance float64
	// Seed fixes the order in which the solver visits samples.
	Seed int64
	// Probability fits Platt sigmoids so the model can Estimate class probabilities.
	Probability bool
}

// DefaultParams returns the parameters used by the trainer unless configured otherwise
func DefaultParams() Params {
	return Params{
		C:           1.0,
		MaxIter:     1000,
		Tolerance:   1e-3,
		Seed:        42,
		Probability: true,
	}
}

// Train fits a one-vs-one linear SVM on x with labels y in [0, numClasses).
// Binary machines are trained in class-pair order (0,1), (0,2), ..., so the result is
// fully determined by the data and params.
func Train(x [][]float64, y []int, numClasses int, p Params) (*Model, error) {
	if len(x) == 0 {
		return nil, errors.New("training set is empty")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("features and labels size mismatch: %d vs %d", len(x), len(y))
	}
	if numClasses < 2 {
		return nil, fmt.Errorf("need at least 2 classes, got %d", numClasses)
	}
	if p.C <= 0 {
		return nil, fmt.Errorf("C must be positive, got %v", p.C)
	}
	if p.MaxIter <= 0 {
		p.MaxIter = DefaultParams().MaxIter
	}
	if p.Tolerance <= 0 {
		p.Tolerance = DefaultParams().Tolerance
	}

	dim := len(x[0])
	byClass := make([][]int, numClasses)
	for i := range x {
		if len(x[i]) != dim {
			return nil, fmt.Errorf("sample %d has %d features, expected %d", i, len(x[i]), dim)
		}
		if y[i] < 0 || y[i] >= numClasses {
			return nil, fmt.Errorf("sample %d has label %d outside [0, %d)", i, y[i], numClasses)
		}
		byClass[y[i]] = append(byClass[y[i]], i)
	}
	for c, members := range byClass {
		if len(members) == 0 {
			return nil, fmt.Errorf("class %d has no training samples", c)
		}
	}

	rng := rand.New(rand.NewSource(p.Seed))
	model := &Model{NumClasses: numClasses, NumFeatures: dim}

	for pos := 0; pos < numClasses; pos++ {
		for neg := pos + 1; neg < numClasses; neg++ {
			var xs [][]float64
			var ys []float64
			for _, i := range byClass[pos] {
				xs = append(xs, x[i])
				ys = append(ys, 1)
			}
			for _, i := range byClass[neg] {
				xs = append(xs, x[i])
				ys = append(ys, -1)
			}

			machine := trainBinary(xs, ys, p, rng)
			machine.Positive = pos
			machine.Negative = neg

			if p.Probability {
				decisions := make([]float64, len(xs))
				for i := range xs {
					decisions[i] = machine.Decision(xs[i])
				}
				machine.Sigmoid = fitSigmoid(decisions, ys)
			}

			model.Machines = append(model.Machines, machine)
		}
	}

	return model, nil
}

// trainBinary solves the L1-loss SVM dual by coordinate descent. The bias is learned as
// the weight of a constant feature appended to every sample.
func trainBinary(xs [][]float64, ys []float64, p Params, rng *rand.Rand) BinaryMachine {
	n := len(xs)
	dim := len(xs[0])

	augmented := make([][]float64, n)
	qd := make([]float64, n)
	for i, row := range xs {
		augmented[i] = append(append(make([]float64, 0, dim+1), row...), 1)
		qd[i] = floats.Dot(augmented[i], augmented[i])
	}

	alpha := make([]float64, n)
	w := make([]float64, dim+1)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	for iter := 0; iter < p.MaxIter; iter++ {
		rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

		maxPG := math.Inf(-1)
		minPG := math.Inf(1)
		for _, i := range order {
			g := ys[i]*floats.Dot(w, augmented[i]) - 1

			pg := g
			switch {
			case alpha[i] == 0:
				pg = math.Min(g, 0)
			case alpha[i] == p.C:
				pg = math.Max(g, 0)
			}
			maxPG = math.Max(maxPG, pg)
			minPG = math.Min(minPG, pg)

			if math.Abs(pg) > 1e-12 {
				old := alpha[i]
				alpha[i] = math.Min(math.Max(alpha[i]-g/qd[i], 0), p.C)
				floats.AddScaled(w, (alpha[i]-old)*ys[i], augmented[i])
			}
		}

		if iter > 0 && maxPG-minPG <= p.Tolerance {
			break
		}
	}

	supportVectors := 0
	for _, a := range alpha {
		if a > 0 {
			supportVectors++
		}
	}

	return BinaryMachine{
		Weights:        append([]float64(nil), w[:dim]...),
		Bias:           w[dim],
		SupportVectors: supportVectors,
	}
}
