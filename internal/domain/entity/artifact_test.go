package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ressKim-io/iris-classifier/internal/ml/svm"
)

func TestNewArtifact(t *testing.T) {
	model := &svm.Model{NumClasses: 3, NumFeatures: 4}
	classes := []string{"Setosa", "Versicolor", "Virginica"}

	artifact := NewArtifact(model, classes, FeatureNames)

	assert.NotEqual(t, uuid.Nil, artifact.ID)
	assert.Equal(t, ArtifactFormatVersion, artifact.FormatVersion)
	assert.False(t, artifact.CreatedAt.IsZero())
	assert.Equal(t, classes, artifact.Classes)
	assert.Same(t, model, artifact.Model)

	classes[0] = "changed"
	assert.Equal(t, "Setosa", artifact.Classes[0])
}

func TestArtifact_Validate(t *testing.T) {
	valid := func() *Artifact {
		return NewArtifact(&svm.Model{NumClasses: 3, NumFeatures: 4}, SpeciesNames, FeatureNames)
	}

	tests := []struct {
		name      string
		mutate    func(a *Artifact)
		expectErr bool
	}{
		{name: "valid", mutate: func(*Artifact) {}, expectErr: false},
		{name: "wrong format version", mutate: func(a *Artifact) { a.FormatVersion = 99 }, expectErr: true},
		{name: "no model", mutate: func(a *Artifact) { a.Model = nil }, expectErr: true},
		{name: "reordered classes", mutate: func(a *Artifact) {
			a.Classes = []string{"Versicolor", "Setosa", "Virginica"}
		}, expectErr: true},
		{name: "missing feature", mutate: func(a *Artifact) { a.Features = a.Features[:3] }, expectErr: true},
		{name: "model shape mismatch", mutate: func(a *Artifact) { a.Model.NumFeatures = 2 }, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid()
			tt.mutate(a)

			err := a.Validate()

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
