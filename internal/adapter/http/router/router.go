package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"

	"github.com/ressKim-io/iris-classifier/internal/adapter/http/handler"
	"github.com/ressKim-io/iris-classifier/internal/adapter/http/middleware"
	"github.com/ressKim-io/iris-classifier/internal/infrastructure/config"
	"github.com/ressKim-io/iris-classifier/internal/infrastructure/metrics"
	"github.com/ressKim-io/iris-classifier/internal/usecase"
)

// Setup creates and configures the Gin router
func Setup(cfg config.ServerConfig, predictUC usecase.PredictUsecase, m *metrics.Metrics, logger *zap.Logger) (*gin.Engine, error) {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics(m))

	router.GET("/", handler.Home)

	// Health endpoints
	healthHandler := handler.NewHealthHandler(predictUC)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(m.Handler()))

	predictHandlers := []gin.HandlerFunc{}
	if cfg.RateLimit != "" {
		limit, err := rateLimit(cfg.RateLimit, logger)
		if err != nil {
			return nil, err
		}
		predictHandlers = append(predictHandlers, limit)
	}
	predictHandler := handler.NewPredictHandler(predictUC, m)
	predictHandlers = append(predictHandlers, predictHandler.Predict)
	router.POST("/predict", predictHandlers...)

	return router, nil
}

// rateLimit builds an in-memory per-client-IP limiter from a "<limit>-<period>" rate
func rateLimit(formatted string, logger *zap.Logger) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}
	logger.Info("Rate limiting enabled", zap.String("rate", formatted))

	instance := limiter.New(memory.NewStore(), rate)
	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			handler.RespondError(c, http.StatusTooManyRequests, handler.CodeRateLimited, "rate limit exceeded")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			logger.Error("Rate limiter failed", zap.Error(err))
			handler.RespondError(c, http.StatusInternalServerError, handler.CodeInternalError, "internal server error")
		}),
	), nil
}
