package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ressKim-io/iris-classifier/internal/domain/entity"
)

// PredictResponse represents a successful response of POST /predict
type PredictResponse struct {
	Prediction      string              `json:"prediction"`
	PredictionIndex int                 `json:"prediction_index"`
	Confidence      *float64            `json:"confidence"`
	InputData       entity.Measurements `json:"input_data"`
	AllClasses      []string            `json:"all_classes"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status              string `json:"status"`
	ModelStatus         string `json:"model_status"`
	ModelID             string `json:"model_id,omitempty"`
	SupportsProbability *bool  `json:"supports_probability,omitempty"`
}

// APIError is returned when the service answers with a non-2xx status
type APIError struct {
	StatusCode     int      `json:"-"`
	Message        string   `json:"error"`
	Code           string   `json:"code"`
	RequestID      string   `json:"request_id,omitempty"`
	MissingFields  []string `json:"missing_fields,omitempty"`
	RequiredFields []string `json:"required_fields,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("iris service returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("iris service returned status %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// IrisClient is an HTTP client for the iris classification service
type IrisClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewIrisClient creates a new iris service client
func NewIrisClient(baseURL string, timeout time.Duration) *IrisClient {
	return &IrisClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Predict sends one sample for classification
func (c *IrisClient) Predict(ctx context.Context, m entity.Measurements, requestID string) (*PredictResponse, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	var result PredictResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health fetches the service health document
func (c *IrisClient) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var result HealthResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ready checks if the service has a model loaded
func (c *IrisClient) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ready", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("iris service not ready: status %d", resp.StatusCode)
	}

	return nil
}

func (c *IrisClient) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}
	if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(respBody))
	}
	return apiErr
}
