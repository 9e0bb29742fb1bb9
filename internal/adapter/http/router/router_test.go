package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ressKim-io/iris-classifier/internal/adapter/repository/file"
	"github.com/ressKim-io/iris-classifier/internal/infrastructure/config"
	"github.com/ressKim-io/iris-classifier/internal/infrastructure/metrics"
	"github.com/ressKim-io/iris-classifier/internal/ml/svm"
	"github.com/ressKim-io/iris-classifier/internal/usecase"
)

var trainedPath string

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	dir, err := os.MkdirTemp("", "iris-router-test")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	trainedPath = filepath.Join(dir, "iris_model.gob")
	uc := usecase.NewTrainUsecase(file.NewArtifactRepository(trainedPath), zap.NewNop())
	if _, err := uc.Run(context.Background(), &usecase.TrainInput{TestRatio: 0.2, Params: svm.DefaultParams()}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.RemoveAll(dir)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func trainedModel(t *testing.T) *usecase.LoadedModel {
	t.Helper()
	model, err := usecase.LoadModel(context.Background(), file.NewArtifactRepository(trainedPath))
	require.NoError(t, err)
	return model
}

func setupRouter(t *testing.T, model *usecase.LoadedModel, rate string) (*gin.Engine, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	m.SetModelLoaded(model != nil)
	r, err := Setup(config.ServerConfig{RateLimit: rate}, usecase.NewPredictUsecase(model), m, zap.NewNop())
	require.NoError(t, err)
	return r, m
}

func do(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const setosa = `{"sepal_length":5.1,"sepal_width":3.5,"petal_length":1.4,"petal_width":0.2}`

func TestRouter_WithModel(t *testing.T) {
	r, _ := setupRouter(t, trainedModel(t), "")

	t.Run("home", func(t *testing.T) {
		w := do(r, http.MethodGet, "/", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "POST /predict")
	})

	t.Run("health reports loaded", func(t *testing.T) {
		w := do(r, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "loaded", body["model_status"])
		assert.NotEmpty(t, body["model_id"])
	})

	t.Run("ready", func(t *testing.T) {
		w := do(r, http.MethodGet, "/ready", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("predicts setosa", func(t *testing.T) {
		w := do(r, http.MethodPost, "/predict", setosa)

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

		var out usecase.PredictOutput
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, "Setosa", out.Prediction)
		assert.Equal(t, 0, out.PredictionIndex)
		require.NotNil(t, out.Confidence)
		assert.Greater(t, *out.Confidence, 0.0)
		assert.LessOrEqual(t, *out.Confidence, 1.0)
		assert.Equal(t, 5.1, out.InputData.SepalLength)
		assert.Equal(t, []string{"Setosa", "Versicolor", "Virginica"}, out.AllClasses)
	})

	t.Run("prediction index always maps to its label", func(t *testing.T) {
		samples := []string{
			setosa,
			`{"sepal_length":"6.0","sepal_width":"2.7","petal_length":"5.1","petal_width":"1.6"}`,
			`{"sepal_length":7.7,"sepal_width":3.8,"petal_length":6.7,"petal_width":2.2}`,
			`{"sepal_length":0.1,"sepal_width":0.1,"petal_length":0.1,"petal_width":0.1}`,
			`{"sepal_length":100,"sepal_width":100,"petal_length":100,"petal_width":100}`,
		}
		for _, sample := range samples {
			w := do(r, http.MethodPost, "/predict", sample)
			require.Equal(t, http.StatusOK, w.Code, sample)

			var out usecase.PredictOutput
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
			require.GreaterOrEqual(t, out.PredictionIndex, 0)
			require.Less(t, out.PredictionIndex, 3)
			assert.Equal(t, out.AllClasses[out.PredictionIndex], out.Prediction)
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name    string
			body    string
			message string
		}{
			{name: "no body", body: "", message: "No JSON data provided"},
			{name: "empty object", body: "{}", message: "No JSON data provided"},
			{name: "missing field", body: `{"sepal_length":5.1,"sepal_width":3.5,"petal_length":1.4}`,
				message: "Missing required fields: petal_width"},
			{name: "non numeric", body: `{"sepal_length":"abc","sepal_width":3.5,"petal_length":1.4,"petal_width":0.2}`,
				message: "All input values must be valid numbers"},
			{name: "boolean", body: `{"sepal_length":true,"sepal_width":3.5,"petal_length":1.4,"petal_width":0.2}`,
				message: "All input values must be valid numbers"},
			{name: "zero", body: `{"sepal_length":5.1,"sepal_width":3.5,"petal_length":1.4,"petal_width":0}`,
				message: "All measurements must be positive numbers"},
			{name: "negative", body: `{"sepal_length":-5.1,"sepal_width":3.5,"petal_length":1.4,"petal_width":0.2}`,
				message: "All measurements must be positive numbers"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := do(r, http.MethodPost, "/predict", tt.body)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				var body map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.message, body["error"])
				assert.Equal(t, "INVALID_REQUEST", body["code"])
			})
		}
	})

	t.Run("missing fields lists", func(t *testing.T) {
		w := do(r, http.MethodPost, "/predict", `{"petal_length":1.4}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []any{"sepal_length", "sepal_width", "petal_width"}, body["missing_fields"])
		assert.Len(t, body["required_fields"], 4)
	})

	t.Run("method not allowed", func(t *testing.T) {
		w := do(r, http.MethodGet, "/predict", "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("cors preflight", func(t *testing.T) {
		w := do(r, http.MethodOptions, "/predict", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRouter_WithoutModel(t *testing.T) {
	r, _ := setupRouter(t, nil, "")

	t.Run("health reports not loaded", func(t *testing.T) {
		w := do(r, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"healthy","model_status":"not loaded"}`, w.Body.String())
	})

	t.Run("not ready", func(t *testing.T) {
		w := do(r, http.MethodGet, "/ready", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("predict fails regardless of input", func(t *testing.T) {
		for _, body := range []string{setosa, "", "{}", `{"sepal_length":"abc"}`} {
			w := do(r, http.MethodPost, "/predict", body)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			var out map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
			assert.Equal(t, "Model not loaded. Please ensure the model file exists.", out["error"])
			assert.Equal(t, "MODEL_NOT_LOADED", out["code"])
		}
	})
}

func TestRouter_Metrics(t *testing.T) {
	r, _ := setupRouter(t, trainedModel(t), "")

	do(r, http.MethodPost, "/predict", setosa)
	do(r, http.MethodPost, "/predict", "{}")

	w := do(r, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `iris_predictions_total{class="Setosa"} 1`)
	assert.Contains(t, body, `http_requests_total{method="POST",path="/predict",status="200"} 1`)
	assert.Contains(t, body, `http_requests_total{method="POST",path="/predict",status="400"} 1`)
	assert.Contains(t, body, "iris_model_loaded 1")
}

func TestRouter_RateLimit(t *testing.T) {
	r, _ := setupRouter(t, trainedModel(t), "2-M")

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/predict", setosa).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/predict", setosa).Code)

	w := do(r, http.MethodPost, "/predict", setosa)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")

	// other routes are not limited
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", "").Code)
}

func TestSetup_InvalidRateLimit(t *testing.T) {
	_, err := Setup(config.ServerConfig{RateLimit: "lots"}, usecase.NewPredictUsecase(nil), metrics.New(), zap.NewNop())
	assert.Error(t, err)
}
