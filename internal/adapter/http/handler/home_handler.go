package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceInfo represents the response of GET /
type ServiceInfo struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

// Home handles GET /
func Home(c *gin.Context) {
	c.JSON(http.StatusOK, ServiceInfo{
		Message: "Iris Flower Classification API is running!",
		Endpoints: map[string]string{
			"predict": "POST /predict",
			"health":  "GET /health",
			"ready":   "GET /ready",
			"metrics": "GET /metrics",
		},
	})
}
