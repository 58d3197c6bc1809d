package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sentiment-trading/internal/dto"
	"sentiment-trading/pkg/common"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/utils"
)

const defaultHistoryLimit = 20

func (h *HttpAPIHandler) SetupRecommendations(base *echo.Group) {
	v1 := base.Group("/v1/recommendations")
	{
		v1.POST("", h.Recommend)
		v1.GET("/history", h.History)
	}
}

func (h *HttpAPIHandler) Recommend(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.RecommendRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	newsDate, err := utils.ParseDate(req.PublishedOn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	result, err := h.service.RecommendationService.Recommend(ctx, dto.RecommendationParam{
		Budget:       *req.Budget,
		NewsDate:     newsDate,
		ExtraTickers: req.ExtraTickers,
		Trigger:      common.TRIGGER_HTTP,
	})
	if err != nil {
		h.log.ErrorContext(ctx, "recommendation failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.NewInternalErrorResponse("failed to build recommendation"))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", result))
}

func (h *HttpAPIHandler) History(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.HistoryRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid query"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if req.Limit == 0 {
		req.Limit = defaultHistoryLimit
	}

	runs, err := h.service.RecommendationService.History(ctx, req.Limit)
	if err != nil {
		h.log.ErrorContext(ctx, "failed to load history", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.NewInternalErrorResponse("failed to load history"))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", runs))
}
