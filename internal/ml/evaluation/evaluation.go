// Package evaluation scores classifier predictions against held-out labels.
package evaluation

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// ClassMetrics holds precision, recall and F1 for one class
type ClassMetrics struct {
	Class     string  `json:"class"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Report is a per-class breakdown plus overall accuracy
type Report struct {
	Accuracy    float64        `json:"accuracy"`
	Classes     []ClassMetrics `json:"classes"`
	MacroAvg    ClassMetrics   `json:"macro_avg"`
	WeightedAvg ClassMetrics   `json:"weighted_avg"`
	Total       int            `json:"total"`
}

// Accuracy returns the fraction of predictions equal to the true labels
func Accuracy(truth, predicted []int) (float64, error) {
	if err := checkLengths(truth, predicted); err != nil {
		return 0, err
	}
	correct := 0
	for i := range truth {
		if truth[i] == predicted[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(truth)), nil
}

// NewReport builds a classification report. classes names the label indices.
// Precision (recall) is 0 for a class that was never predicted (never present).
func NewReport(truth, predicted []int, classes []string) (*Report, error) {
	accuracy, err := Accuracy(truth, predicted)
	if err != nil {
		return nil, err
	}

	k := len(classes)
	truePos := make([]int, k)
	predCount := make([]int, k)
	support := make([]int, k)
	for i := range truth {
		if truth[i] < 0 || truth[i] >= k || predicted[i] < 0 || predicted[i] >= k {
			return nil, fmt.Errorf("label out of range at %d", i)
		}
		support[truth[i]]++
		predCount[predicted[i]]++
		if truth[i] == predicted[i] {
			truePos[truth[i]]++
		}
	}

	report := &Report{Accuracy: accuracy, Total: len(truth)}
	precisions := make([]float64, k)
	recalls := make([]float64, k)
	f1s := make([]float64, k)
	weights := make([]float64, k)
	for c := 0; c < k; c++ {
		precisions[c] = ratio(truePos[c], predCount[c])
		recalls[c] = ratio(truePos[c], support[c])
		if precisions[c]+recalls[c] > 0 {
			f1s[c] = 2 * precisions[c] * recalls[c] / (precisions[c] + recalls[c])
		}
		weights[c] = float64(support[c])

		report.Classes = append(report.Classes, ClassMetrics{
			Class:     classes[c],
			Precision: precisions[c],
			Recall:    recalls[c],
			F1:        f1s[c],
			Support:   support[c],
		})
	}

	report.MacroAvg = ClassMetrics{
		Class:     "macro avg",
		Precision: stat.Mean(precisions, nil),
		Recall:    stat.Mean(recalls, nil),
		F1:        stat.Mean(f1s, nil),
		Support:   len(truth),
	}
	report.WeightedAvg = ClassMetrics{
		Class:     "weighted avg",
		Precision: stat.Mean(precisions, weights),
		Recall:    stat.Mean(recalls, weights),
		F1:        stat.Mean(f1s, weights),
		Support:   len(truth),
	}

	return report, nil
}

// String renders the report as a fixed-width table
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%14s %10s %10s %10s %10s\n\n", "", "precision", "recall", "f1-score", "support")
	for _, c := range r.Classes {
		writeRow(&b, c)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%14s %10s %10s %10.2f %10d\n", "accuracy", "", "", r.Accuracy, r.Total)
	writeRow(&b, r.MacroAvg)
	writeRow(&b, r.WeightedAvg)
	return b.String()
}

func writeRow(b *strings.Builder, c ClassMetrics) {
	fmt.Fprintf(b, "%14s %10.2f %10.2f %10.2f %10d\n", c.Class, c.Precision, c.Recall, c.F1, c.Support)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func checkLengths(truth, predicted []int) error {
	if len(truth) == 0 {
		return errors.New("no labels to evaluate")
	}
	if len(truth) != len(predicted) {
		return fmt.Errorf("labels and predictions size mismatch: %d vs %d", len(truth), len(predicted))
	}
	return nil
}
