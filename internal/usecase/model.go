package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ressKim-io/iris-classifier/internal/domain/entity"
	"github.com/ressKim-io/iris-classifier/internal/domain/repository"
	"github.com/ressKim-io/iris-classifier/internal/domain/service"
)

// LoadedModel is an immutable, validated handle on a trained artifact.
// It is created once at startup and shared read-only between requests.
type LoadedModel struct {
	id      uuid.UUID
	classes []string

	classifier service.Classifier
	// nil when the artifact was trained without probability calibration
	estimator service.ProbabilityEstimator
}

// NewLoadedModel validates the artifact against the fixed label table and resolves
// its probability capability.
func NewLoadedModel(artifact *entity.Artifact) (*LoadedModel, error) {
	if artifact == nil {
		return nil, fmt.Errorf("%w: artifact is nil", ErrInvalidArtifact)
	}
	if err := artifact.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}

	m := &LoadedModel{
		id:         artifact.ID,
		classes:    append([]string(nil), artifact.Classes...),
		classifier: artifact.Model,
	}
	if artifact.Model.SupportsProbability() {
		m.estimator = artifact.Model
	}
	return m, nil
}

// LoadModel reads the current artifact from repo and wraps it in a LoadedModel
func LoadModel(ctx context.Context, repo repository.ArtifactRepository) (*LoadedModel, error) {
	artifact, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load model from %s: %w", repo.Location(), err)
	}
	return NewLoadedModel(artifact)
}

// ID returns the artifact identifier
func (m *LoadedModel) ID() uuid.UUID {
	return m.id
}

// Classes returns a copy of the label table
func (m *LoadedModel) Classes() []string {
	return append([]string(nil), m.classes...)
}

// SupportsProbability reports whether predictions carry a confidence
func (m *LoadedModel) SupportsProbability() bool {
	return m.estimator != nil
}
