package service

import (
	"sentiment-trading/config"
	"sentiment-trading/internal/repository"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/metrics"
)

type Service struct {
	RecommendationService RecommendationService
	SchedulerService      SchedulerService
}

// NewService builds the services. notifier may be nil when no report channel
// is configured.
func NewService(
	cfg *config.Config,
	log *logger.Logger,
	m *metrics.Metrics,
	repo *repository.Repository,
	notifier ReportNotifier,
) (*Service, error) {
	if notifier == nil {
		notifier = NewNoopReportNotifier()
	}

	recommendationService, err := NewRecommendationService(cfg, log, m,
		repo.TrendingRepo, repo.SentimentRepo, repo.PriceRepo, repo.RecommendationRunRepo)
	if err != nil {
		return nil, err
	}

	return &Service{
		RecommendationService: recommendationService,
		SchedulerService:      NewSchedulerService(cfg, log, recommendationService, notifier),
	}, nil
}
