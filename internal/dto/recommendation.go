package dto

import "time"

// RecommendationParam is a validated run request. Every entry point (console,
// HTTP, scheduler) builds one of these before the pipeline starts.
type RecommendationParam struct {
	Budget       float64
	NewsDate     time.Time
	ExtraTickers []string
	Trigger      string
}

type BuyPosition struct {
	Symbol string  `json:"symbol"`
	Shares int     `json:"shares"`
	Price  float64 `json:"price"`
	Cost   float64 `json:"cost"`
}

type RecommendationResult struct {
	RunID      uint          `json:"run_id,omitempty"`
	Trigger    string        `json:"trigger"`
	NewsDate   string        `json:"news_date"`
	Budget     float64       `json:"budget"`
	Universe   []string      `json:"universe"`
	Sells      []string      `json:"sells"`
	Buys       []BuyPosition `json:"buys"`
	TotalCost  float64       `json:"total_cost"`
	TrimSteps  int           `json:"trim_steps"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
}
