package repository

import (
	"context"

	"github.com/ressKim-io/iris-classifier/internal/domain/entity"
)

// VerifyFunc inspects an artifact decoded back from pending storage before it is committed
type VerifyFunc func(artifact *entity.Artifact) error

// ArtifactRepository defines the interface for model artifact storage
type ArtifactRepository interface {
	// Save persists the artifact. The previous artifact stays in place unless the new one
	// was fully written, reloaded and accepted by verify.
	Save(ctx context.Context, artifact *entity.Artifact, verify VerifyFunc) error

	// Load reads the current artifact
	Load(ctx context.Context) (*entity.Artifact, error)

	// Location describes where artifacts are stored
	Location() string
}
