package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ressKim-io/iris-classifier/internal/usecase"
)

// PredictionObserver is notified of every successful prediction
type PredictionObserver interface {
	ObservePrediction(class string)
}

// PredictHandler handles classification requests
type PredictHandler struct {
	predictUC usecase.PredictUsecase
	observer  PredictionObserver
}

// NewPredictHandler creates a new predict handler. observer may be nil.
func NewPredictHandler(predictUC usecase.PredictUsecase, observer PredictionObserver) *PredictHandler {
	return &PredictHandler{
		predictUC: predictUC,
		observer:  observer,
	}
}

// Predict handles POST /predict
func (h *PredictHandler) Predict(c *gin.Context) {
	// An unreadable body is passed on as no data; the usecase decides which failure wins.
	input, err := decodeJSONObject(c)
	if err != nil {
		input = nil
	}

	output, err := h.predictUC.Predict(c.Request.Context(), input)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	if h.observer != nil {
		h.observer.ObservePrediction(output.Prediction)
	}
	respondSuccess(c, http.StatusOK, output)
}
