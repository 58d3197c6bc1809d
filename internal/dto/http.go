package dto

import "net/http"

type BaseResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func NewBaseResponse(code int, message string, data interface{}) *BaseResponse {
	return &BaseResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func NewBadRequestResponse(message string) *BaseResponse {
	return NewBaseResponse(http.StatusBadRequest, message, nil)
}

func NewSuccessResponse(message string, data interface{}) *BaseResponse {
	return NewBaseResponse(http.StatusOK, message, data)
}

func NewInternalErrorResponse(message string) *BaseResponse {
	return NewBaseResponse(http.StatusInternalServerError, message, nil)
}

// RecommendRequest is the body of POST /api/v1/recommendations.
type RecommendRequest struct {
	Budget       *float64 `json:"budget" validate:"required,gte=0"`
	PublishedOn  string   `json:"published_on" validate:"required,datetime=2006-01-02"`
	ExtraTickers []string `json:"extra_tickers" validate:"omitempty,max=50,dive,required,max=12"`
}

// HistoryRequest holds the query of GET /api/v1/recommendations/history.
type HistoryRequest struct {
	Limit int `query:"limit" validate:"omitempty,gte=1,lte=100"`
}
