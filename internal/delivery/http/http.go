package http

import (
	"context"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"sentiment-trading/config"
	"sentiment-trading/internal/service"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/metrics"
	"sentiment-trading/pkg/middleware"
)

type HttpAPIHandler struct {
	cfg       config.API
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
	metrics   *metrics.Metrics
	log       *logger.Logger
}

func NewHttpAPIHandler(ctx context.Context, cfg config.API, echo *echo.Echo, validator *goValidator.Validate, service *service.Service, m *metrics.Metrics, log *logger.Logger) *HttpAPIHandler {
	return &HttpAPIHandler{
		cfg:       cfg,
		echo:      echo,
		validator: validator,
		service:   service,
		metrics:   m,
		log:       log,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.echo.GET("/metrics", echo.WrapHandler(h.metrics.Handler()))

	base := h.echo.Group("/api", middleware.NewRateLimiterMiddleware(h.cfg))
	h.SetupRecommendations(base)
}
