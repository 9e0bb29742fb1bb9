package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ressKim-io/iris-classifier/internal/domain/entity"
)

// Error definitions for prediction usecase
var (
	ErrModelNotLoaded   = errors.New("model not loaded")
	ErrNoData           = errors.New("no JSON data provided")
	ErrInvalidNumber    = errors.New("all input values must be valid numbers")
	ErrNonPositive      = errors.New("all measurements must be positive numbers")
	ErrPredictionFailed = errors.New("prediction failed")
	ErrInvalidArtifact  = errors.New("invalid model artifact")
)

// MissingFieldsError reports required input fields that were absent
type MissingFieldsError struct {
	Missing  []string
	Required []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// PredictOutput represents the result of one classification
type PredictOutput struct {
	Prediction      string              `json:"prediction"`
	PredictionIndex int                 `json:"prediction_index"`
	Confidence      *float64            `json:"confidence"`
	InputData       entity.Measurements `json:"input_data"`
	AllClasses      []string            `json:"all_classes"`
}

// ModelStatus describes the model the service was started with
type ModelStatus struct {
	Loaded              bool
	ModelID             string
	SupportsProbability bool
	Classes             []string
}

// PredictUsecase defines the interface for prediction business logic
type PredictUsecase interface {
	// Predict validates a decoded JSON object and classifies it
	Predict(ctx context.Context, input map[string]any) (*PredictOutput, error)
	Status() *ModelStatus
}

type predictUsecase struct {
	model *LoadedModel
}

// NewPredictUsecase creates a prediction usecase. A nil model puts the service in the
// not-loaded state for its whole lifetime.
func NewPredictUsecase(model *LoadedModel) PredictUsecase {
	return &predictUsecase{model: model}
}

func (u *predictUsecase) Status() *ModelStatus {
	if u.model == nil {
		return &ModelStatus{Loaded: false}
	}
	return &ModelStatus{
		Loaded:              true,
		ModelID:             u.model.ID().String(),
		SupportsProbability: u.model.SupportsProbability(),
		Classes:             u.model.Classes(),
	}
}

func (u *predictUsecase) Predict(ctx context.Context, input map[string]any) (*PredictOutput, error) {
	if u.model == nil {
		return nil, ErrModelNotLoaded
	}
	if len(input) == 0 {
		return nil, ErrNoData
	}

	var missing []string
	for _, name := range entity.FeatureNames {
		if _, ok := input[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{
			Missing:  missing,
			Required: append([]string(nil), entity.FeatureNames...),
		}
	}

	var values [4]float64
	for i, name := range entity.FeatureNames {
		v, ok := toFloat(input[name])
		if !ok {
			return nil, ErrInvalidNumber
		}
		values[i] = v
	}

	sample := entity.NewMeasurements(values)
	if !sample.AllPositive() {
		return nil, ErrNonPositive
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	index, confidence, err := u.infer(sample.Vector())
	if err != nil {
		return nil, err
	}

	return &PredictOutput{
		Prediction:      u.model.classes[index],
		PredictionIndex: index,
		Confidence:      confidence,
		InputData:       sample,
		AllClasses:      u.model.Classes(),
	}, nil
}

func (u *predictUsecase) infer(x []float64) (index int, confidence *float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			index, confidence = 0, nil
			err = fmt.Errorf("%w: %v", ErrPredictionFailed, r)
		}
	}()

	index, err = u.model.classifier.Classify(x)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrPredictionFailed, err)
	}
	if index < 0 || index >= len(u.model.classes) {
		return 0, nil, fmt.Errorf("%w: class index %d out of range", ErrPredictionFailed, index)
	}

	if u.model.estimator == nil {
		return index, nil, nil
	}
	probs, err := u.model.estimator.Estimate(x)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrPredictionFailed, err)
	}
	if len(probs) == 0 {
		return 0, nil, fmt.Errorf("%w: empty probability vector", ErrPredictionFailed)
	}
	best := probs[0]
	for _, p := range probs[1:] {
		best = math.Max(best, p)
	}
	return index, &best, nil
}

// toFloat converts a decoded JSON value to a finite real number.
// Numbers and numeric strings convert; everything else does not.
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
