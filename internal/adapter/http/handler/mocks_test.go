package handler

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/ressKim-io/iris-classifier/internal/usecase"
)

// MockPredictUsecase is a mock implementation of PredictUsecase
type MockPredictUsecase struct {
	mock.Mock
}

func (m *MockPredictUsecase) Predict(ctx context.Context, input map[string]any) (*usecase.PredictOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PredictOutput), args.Error(1)
}

func (m *MockPredictUsecase) Status() *usecase.ModelStatus {
	args := m.Called()
	return args.Get(0).(*usecase.ModelStatus)
}

type countingObserver struct {
	mu     sync.Mutex
	counts map[string]int
}

func (o *countingObserver) ObservePrediction(class string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.counts == nil {
		o.counts = make(map[string]int)
	}
	o.counts[class]++
}
