package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/ressKim-io/iris-classifier/internal/adapter/client"
	"github.com/ressKim-io/iris-classifier/internal/domain/entity"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("predict", pflag.ContinueOnError)
	url := fs.String("url", "http://localhost:8080", "base URL of the iris service")
	timeout := fs.Duration("timeout", 10*time.Second, "request timeout")
	health := fs.Bool("health", false, "print the service health document instead of predicting")
	requestID := fs.String("request-id", "", "X-Request-ID to send")
	sepalLength := fs.Float64("sepal-length", 0, "sepal length in cm")
	sepalWidth := fs.Float64("sepal-width", 0, "sepal width in cm")
	petalLength := fs.Float64("petal-length", 0, "petal length in cm")
	petalWidth := fs.Float64("petal-width", 0, "petal width in cm")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	c := client.NewIrisClient(*url, *timeout)
	ctx := context.Background()

	if *health {
		resp, err := c.Health(ctx)
		if err != nil {
			return err
		}
		return printJSON(resp)
	}

	sample := entity.NewMeasurements([4]float64{*sepalLength, *sepalWidth, *petalLength, *petalWidth})
	resp, err := c.Predict(ctx, sample, *requestID)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
