package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ressKim-io/iris-classifier/internal/domain/entity"
	"github.com/ressKim-io/iris-classifier/internal/domain/repository"
)

// MockClassifier is a mock implementation of service.Classifier
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(x []float64) (int, error) {
	args := m.Called(x)
	return args.Int(0), args.Error(1)
}

// MockEstimator is a mock implementation of service.ProbabilityEstimator
type MockEstimator struct {
	mock.Mock
}

func (m *MockEstimator) Estimate(x []float64) ([]float64, error) {
	args := m.Called(x)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

// MockArtifactRepository is a mock implementation of ArtifactRepository
type MockArtifactRepository struct {
	mock.Mock
}

func (m *MockArtifactRepository) Save(ctx context.Context, artifact *entity.Artifact, verify repository.VerifyFunc) error {
	args := m.Called(ctx, artifact, verify)
	return args.Error(0)
}

func (m *MockArtifactRepository) Load(ctx context.Context) (*entity.Artifact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Artifact), args.Error(1)
}

func (m *MockArtifactRepository) Location() string {
	args := m.Called()
	return args.String(0)
}
