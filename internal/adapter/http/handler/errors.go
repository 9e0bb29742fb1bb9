package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ressKim-io/iris-classifier/internal/usecase"
)

// Machine-readable error codes
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeModelNotLoaded = "MODEL_NOT_LOADED"
	CodeInternalError  = "INTERNAL_ERROR"
	CodeRateLimited    = "RATE_LIMITED"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode     int
	Code           string
	Message        string
	MissingFields  []string
	RequiredFields []string
}

// MapUsecaseError maps usecase errors to HTTP error responses.
// It provides consistent error handling across all handlers.
func MapUsecaseError(err error) ErrorResponse {
	var missingErr *usecase.MissingFieldsError

	switch {
	case errors.Is(err, usecase.ErrModelNotLoaded):
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       CodeModelNotLoaded,
			Message:    "Model not loaded. Please ensure the model file exists.",
		}
	case errors.Is(err, usecase.ErrNoData):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       CodeInvalidRequest,
			Message:    "No JSON data provided",
		}
	case errors.As(err, &missingErr):
		return ErrorResponse{
			StatusCode:     http.StatusBadRequest,
			Code:           CodeInvalidRequest,
			Message:        "Missing required fields: " + strings.Join(missingErr.Missing, ", "),
			MissingFields:  missingErr.Missing,
			RequiredFields: missingErr.Required,
		}
	case errors.Is(err, usecase.ErrInvalidNumber):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       CodeInvalidRequest,
			Message:    "All input values must be valid numbers",
		}
	case errors.Is(err, usecase.ErrNonPositive):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       CodeInvalidRequest,
			Message:    "All measurements must be positive numbers",
		}
	case errors.Is(err, usecase.ErrPredictionFailed):
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       CodeInternalError,
			Message:    err.Error(),
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       CodeInternalError,
			Message:    "internal server error",
		}
	}
}

// HandleUsecaseError handles a usecase error by sending an appropriate HTTP response.
// It maps the error to an HTTP status and sends a JSON error response.
func HandleUsecaseError(c *gin.Context, err error) {
	errResp := MapUsecaseError(err)
	respondErrorBody(c, errResp.StatusCode, ErrorBody{
		Error:          errResp.Message,
		Code:           errResp.Code,
		MissingFields:  errResp.MissingFields,
		RequiredFields: errResp.RequiredFields,
	})
}
