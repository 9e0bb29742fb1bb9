package service

// Classifier maps an ordered feature vector to a class index
type Classifier interface {
	Classify(x []float64) (int, error)
}

// ProbabilityEstimator returns one probability per class, summing to 1
type ProbabilityEstimator interface {
	Estimate(x []float64) ([]float64, error)
}
