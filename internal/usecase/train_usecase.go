package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ressKim-io/iris-classifier/internal/domain/entity"
	"github.com/ressKim-io/iris-classifier/internal/domain/repository"
	"github.com/ressKim-io/iris-classifier/internal/ml/dataset"
	"github.com/ressKim-io/iris-classifier/internal/ml/evaluation"
	"github.com/ressKim-io/iris-classifier/internal/ml/svm"
)

// ErrSelfCheckFailed is returned when a freshly written artifact misclassifies the reference sample
var ErrSelfCheckFailed = errors.New("model self-check failed")

// ReferenceSample is a well-known Setosa flower used to check artifacts before they are committed
var ReferenceSample = entity.NewMeasurements([4]float64{5.1, 3.5, 1.4, 0.2})

// TrainInput represents the parameters of a training run
type TrainInput struct {
	TestRatio float64
	Params    svm.Params
}

// TrainOutput represents the result of a training run
type TrainOutput struct {
	Artifact  *entity.Artifact
	Report    *evaluation.Report
	TrainSize int
	TestSize  int
	Location  string
}

// TrainUsecase defines the interface for the offline training flow
type TrainUsecase interface {
	Run(ctx context.Context, input *TrainInput) (*TrainOutput, error)
}

type trainUsecase struct {
	repo   repository.ArtifactRepository
	logger *zap.Logger
}

// NewTrainUsecase creates a new training usecase
func NewTrainUsecase(repo repository.ArtifactRepository, logger *zap.Logger) TrainUsecase {
	return &trainUsecase{
		repo:   repo,
		logger: logger,
	}
}

func (u *trainUsecase) Run(ctx context.Context, input *TrainInput) (*TrainOutput, error) {
	ds, err := dataset.LoadIris()
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	u.logger.Info("Dataset loaded",
		zap.Int("samples", len(ds.Features)),
		zap.Int("features", len(ds.FeatureNames)),
		zap.Strings("feature_names", ds.FeatureNames),
		zap.Strings("classes", ds.Classes),
		zap.Ints("class_counts", ds.ClassCounts()),
	)

	split, err := ds.StratifiedSplit(input.TestRatio, input.Params.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to split dataset: %w", err)
	}
	u.logger.Info("Dataset split",
		zap.Int("train", len(split.TrainX)),
		zap.Int("test", len(split.TestX)),
		zap.Int64("seed", input.Params.Seed),
	)

	model, err := svm.Train(split.TrainX, split.TrainY, len(ds.Classes), input.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to train model: %w", err)
	}

	predicted := make([]int, len(split.TestX))
	for i, x := range split.TestX {
		if predicted[i], err = model.Classify(x); err != nil {
			return nil, fmt.Errorf("failed to evaluate model: %w", err)
		}
	}
	report, err := evaluation.NewReport(split.TestY, predicted, ds.Classes)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	u.logger.Info("Model evaluated",
		zap.Float64("accuracy", report.Accuracy),
		zap.Float64("macro_f1", report.MacroAvg.F1),
		zap.Bool("probability", model.SupportsProbability()),
	)

	artifact := entity.NewArtifact(model, ds.Classes, ds.FeatureNames)
	artifact.Seed = input.Params.Seed
	artifact.TestRatio = input.TestRatio
	artifact.C = input.Params.C
	artifact.Accuracy = report.Accuracy

	if err := u.repo.Save(ctx, artifact, selfCheck); err != nil {
		return nil, fmt.Errorf("failed to save model: %w", err)
	}
	u.logger.Info("Model saved",
		zap.String("path", u.repo.Location()),
		zap.String("model_id", artifact.ID.String()),
	)

	return &TrainOutput{
		Artifact:  artifact,
		Report:    report,
		TrainSize: len(split.TrainX),
		TestSize:  len(split.TestX),
		Location:  u.repo.Location(),
	}, nil
}

// selfCheck verifies that a reloaded artifact is servable and classifies the reference sample as Setosa
func selfCheck(artifact *entity.Artifact) error {
	model, err := NewLoadedModel(artifact)
	if err != nil {
		return err
	}
	index, err := model.classifier.Classify(ReferenceSample.Vector())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSelfCheckFailed, err)
	}
	if entity.Species(index) != entity.SpeciesSetosa {
		return fmt.Errorf("%w: reference sample classified as %s", ErrSelfCheckFailed, entity.Species(index))
	}
	return nil
}
