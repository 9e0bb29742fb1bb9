package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ressKim-io/iris-classifier/internal/ml/svm"
)

// ArtifactFormatVersion is bumped whenever the encoded layout of Artifact changes
const ArtifactFormatVersion = 1

// Artifact is the persisted output of a training run
type Artifact struct {
	ID            uuid.UUID
	FormatVersion int
	CreatedAt     time.Time

	// Classes and Features are recorded from the training data, in label and input order.
	Classes  []string
	Features []string

	Seed      int64
	TestRatio float64
	C         float64
	Accuracy  float64

	Model *svm.Model
}

// NewArtifact wraps a fitted model
func NewArtifact(model *svm.Model, classes, features []string) *Artifact {
	return &Artifact{
		ID:            uuid.New(),
		FormatVersion: ArtifactFormatVersion,
		CreatedAt:     time.Now().UTC(),
		Classes:       append([]string(nil), classes...),
		Features:      append([]string(nil), features...),
		Model:         model,
	}
}

// Validate checks that the artifact can serve predictions with the fixed label table
// and feature order.
func (a *Artifact) Validate() error {
	if a.FormatVersion != ArtifactFormatVersion {
		return fmt.Errorf("unsupported artifact format version %d", a.FormatVersion)
	}
	if a.Model == nil {
		return fmt.Errorf("artifact %s has no model", a.ID)
	}
	if !equalStrings(a.Classes, SpeciesNames) {
		return fmt.Errorf("artifact classes %v do not match label table %v", a.Classes, SpeciesNames)
	}
	if !equalStrings(a.Features, FeatureNames) {
		return fmt.Errorf("artifact features %v do not match %v", a.Features, FeatureNames)
	}
	if a.Model.NumClasses != len(a.Classes) || a.Model.NumFeatures != len(a.Features) {
		return fmt.Errorf("model shape %dx%d does not match artifact metadata",
			a.Model.NumClasses, a.Model.NumFeatures)
	}
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
