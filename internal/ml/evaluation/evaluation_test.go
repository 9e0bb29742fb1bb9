package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name      string
		truth     []int
		predicted []int
		expected  float64
		expectErr bool
	}{
		{name: "all correct", truth: []int{0, 1, 2}, predicted: []int{0, 1, 2}, expected: 1.0},
		{name: "half correct", truth: []int{0, 1, 2, 2}, predicted: []int{0, 1, 1, 0}, expected: 0.5},
		{name: "none correct", truth: []int{0, 0}, predicted: []int{1, 1}, expected: 0},
		{name: "empty", truth: nil, predicted: nil, expectErr: true},
		{name: "size mismatch", truth: []int{0}, predicted: []int{0, 1}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, err := Accuracy(tt.truth, tt.predicted)

			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, acc)
		})
	}
}

func TestNewReport(t *testing.T) {
	classes := []string{"Setosa", "Versicolor", "Virginica"}
	truth := []int{0, 0, 1, 1, 2, 2}
	predicted := []int{0, 0, 1, 2, 2, 2}

	report, err := NewReport(truth, predicted, classes)
	require.NoError(t, err)

	assert.InDelta(t, 5.0/6.0, report.Accuracy, 1e-12)
	assert.Equal(t, 6, report.Total)
	require.Len(t, report.Classes, 3)

	setosa := report.Classes[0]
	assert.Equal(t, "Setosa", setosa.Class)
	assert.Equal(t, 1.0, setosa.Precision)
	assert.Equal(t, 1.0, setosa.Recall)
	assert.Equal(t, 2, setosa.Support)

	versicolor := report.Classes[1]
	assert.Equal(t, 1.0, versicolor.Precision)
	assert.Equal(t, 0.5, versicolor.Recall)
	assert.InDelta(t, 2.0/3.0, versicolor.F1, 1e-12)

	virginica := report.Classes[2]
	assert.InDelta(t, 2.0/3.0, virginica.Precision, 1e-12)
	assert.Equal(t, 1.0, virginica.Recall)

	assert.InDelta(t, (1+1+2.0/3.0)/3, report.MacroAvg.Precision, 1e-12)
	assert.InDelta(t, (1+0.5+1)/3, report.WeightedAvg.Recall, 1e-12)

	text := report.String()
	assert.Contains(t, text, "Versicolor")
	assert.Contains(t, text, "weighted avg")
	assert.Contains(t, text, "accuracy")
}

func TestNewReport_ClassNeverPredicted(t *testing.T) {
	report, err := NewReport([]int{0, 1}, []int{0, 0}, []string{"a", "b"})
	require.NoError(t, err)

	assert.Equal(t, 0.0, report.Classes[1].Precision)
	assert.Equal(t, 0.0, report.Classes[1].Recall)
	assert.Equal(t, 0.0, report.Classes[1].F1)
}

func TestNewReport_LabelOutOfRange(t *testing.T) {
	_, err := NewReport([]int{0, 3}, []int{0, 0}, []string{"a", "b"})
	assert.Error(t, err)
}
