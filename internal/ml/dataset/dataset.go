// Package dataset provides the embedded iris measurements and a stratified train/test split.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
)

//go:embed iris.csv
var irisCSV []byte

// Dataset is a labelled feature matrix.
// Classes lists class names in the order their integer labels encode them.
type Dataset struct {
	Features     [][]float64
	Labels       []int
	FeatureNames []string
	Classes      []string
}

// Split is the result of a train/test partition
type Split struct {
	TrainX [][]float64
	TrainY []int
	TestX  [][]float64
	TestY  []int
}

// LoadIris parses the embedded iris dataset (150 samples, 4 features, 3 classes).
func LoadIris() (*Dataset, error) {
	return Parse(bytes.NewReader(irisCSV))
}

// Parse reads a CSV whose header names the feature columns followed by a class column.
// Class indices follow the order in which class names first appear.
func Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 {
		return nil, errors.New("dataset needs at least one feature and a class column")
	}
	nFeatures := len(header) - 1

	ds := &Dataset{FeatureNames: append([]string(nil), header[:nFeatures]...)}
	classIndex := make(map[string]int)

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := make([]float64, nFeatures)
		for i := 0; i < nFeatures; i++ {
			v, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %s: %w", line, header[i], err)
			}
			row[i] = v
		}

		name := record[nFeatures]
		idx, ok := classIndex[name]
		if !ok {
			idx = len(ds.Classes)
			classIndex[name] = idx
			ds.Classes = append(ds.Classes, name)
		}

		ds.Features = append(ds.Features, row)
		ds.Labels = append(ds.Labels, idx)
	}

	if len(ds.Features) == 0 {
		return nil, errors.New("dataset is empty")
	}
	return ds, nil
}

// ClassCounts returns the number of samples per class index
func (d *Dataset) ClassCounts() []int {
	counts := make([]int, len(d.Classes))
	for _, y := range d.Labels {
		counts[y]++
	}
	return counts
}

// StratifiedSplit holds out testRatio of every class, so each class keeps its proportion
// in both partitions. The same seed always yields the same partition.
func (d *Dataset) StratifiedSplit(testRatio float64, seed int64) (*Split, error) {
	if testRatio <= 0 || testRatio >= 1 {
		return nil, fmt.Errorf("test ratio must be in (0, 1), got %v", testRatio)
	}

	byClass := make([][]int, len(d.Classes))
	for i, y := range d.Labels {
		byClass[y] = append(byClass[y], i)
	}

	rng := rand.New(rand.NewSource(seed))
	split := &Split{}
	for _, indices := range byClass {
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})

		nTest := int(math.Round(float64(len(indices)) * testRatio))
		if nTest == 0 || nTest == len(indices) {
			return nil, fmt.Errorf("test ratio %v leaves a class with an empty partition", testRatio)
		}
		for k, idx := range indices {
			if k < nTest {
				split.TestX = append(split.TestX, d.Features[idx])
				split.TestY = append(split.TestY, d.Labels[idx])
			} else {
				split.TrainX = append(split.TrainX, d.Features[idx])
				split.TrainY = append(split.TrainY, d.Labels[idx])
			}
		}
	}

	return split, nil
}
