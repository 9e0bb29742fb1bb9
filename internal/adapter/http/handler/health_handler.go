package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ressKim-io/iris-classifier/internal/usecase"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	predictUC usecase.PredictUsecase
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(predictUC usecase.PredictUsecase) *HealthHandler {
	return &HealthHandler{predictUC: predictUC}
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status              string `json:"status"`
	ModelStatus         string `json:"model_status"`
	ModelID             string `json:"model_id,omitempty"`
	SupportsProbability *bool  `json:"supports_probability,omitempty"`
}

// Health handles GET /health. The service is healthy even without a model.
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.predictUC.Status()

	resp := HealthStatus{
		Status:      "healthy",
		ModelStatus: "not loaded",
	}
	if status.Loaded {
		resp.ModelStatus = "loaded"
		resp.ModelID = status.ModelID
		resp.SupportsProbability = &status.SupportsProbability
	}

	c.JSON(http.StatusOK, resp)
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if !h.predictUC.Status().Loaded {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "model not loaded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
