package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ressKim-io/iris-classifier/internal/adapter/repository/file"
	"github.com/ressKim-io/iris-classifier/internal/infrastructure/config"
	"github.com/ressKim-io/iris-classifier/internal/infrastructure/logger"
	"github.com/ressKim-io/iris-classifier/internal/ml/svm"
	"github.com/ressKim-io/iris-classifier/internal/usecase"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := config.TrainerFlags("train")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.LoadWithFlags(fs)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	uc := usecase.NewTrainUsecase(file.NewArtifactRepository(cfg.Model.Path), log)
	out, err := uc.Run(ctx, &usecase.TrainInput{
		TestRatio: cfg.Train.TestRatio,
		Params: svm.Params{
			C:           cfg.Train.C,
			MaxIter:     cfg.Train.MaxIter,
			Tolerance:   cfg.Train.Tolerance,
			Seed:        cfg.Train.Seed,
			Probability: cfg.Train.Probability,
		},
	})
	if err != nil {
		log.Error("Training failed", zap.Error(err))
		return err
	}

	fmt.Printf("Training samples: %d\n", out.TrainSize)
	fmt.Printf("Test samples:     %d\n", out.TestSize)
	fmt.Printf("Classes:          %s\n", strings.Join(out.Artifact.Classes, ", "))
	fmt.Printf("Features:         %s\n\n", strings.Join(out.Artifact.Features, ", "))
	fmt.Printf("Model accuracy: %.4f\n\n", out.Report.Accuracy)
	fmt.Println("Classification report:")
	fmt.Println(out.Report.String())
	fmt.Printf("Model %s saved to %s\n", out.Artifact.ID, out.Location)
	return nil
}
