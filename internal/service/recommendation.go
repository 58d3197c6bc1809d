package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"sentiment-trading/config"
	"sentiment-trading/internal/allocation"
	"sentiment-trading/internal/dto"
	"sentiment-trading/internal/model"
	"sentiment-trading/internal/repository"
	"sentiment-trading/pkg/common"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/metrics"
	"sentiment-trading/pkg/utils"
)

var ErrInvalidBudget = errors.New("budget must be a non-negative number")

type RecommendationService interface {
	Recommend(ctx context.Context, param dto.RecommendationParam) (*dto.RecommendationResult, error)
	History(ctx context.Context, limit int) ([]dto.RecommendationResult, error)
}

type recommendationService struct {
	cfg           *config.Config
	log           *logger.Logger
	metrics       *metrics.Metrics
	trendingRepo  repository.TrendingTickerRepository
	sentimentRepo repository.SentimentRepository
	runRepo       repository.RecommendationRunRepository
	classifier    allocation.Classifier
	basis         allocation.Basis
	fitter        *allocation.BudgetFitter
}

func NewRecommendationService(
	cfg *config.Config,
	log *logger.Logger,
	m *metrics.Metrics,
	trendingRepo repository.TrendingTickerRepository,
	sentimentRepo repository.SentimentRepository,
	priceRepo repository.PriceRepository,
	runRepo repository.RecommendationRunRepository,
) (RecommendationService, error) {
	basis, err := allocation.ParseBasis(cfg.Allocation.AggregateBasis)
	if err != nil {
		return nil, err
	}
	return &recommendationService{
		cfg:           cfg,
		log:           log,
		metrics:       m,
		trendingRepo:  trendingRepo,
		sentimentRepo: sentimentRepo,
		runRepo:       runRepo,
		classifier:    allocation.NewClassifier(cfg.Allocation.MaxShares, cfg.Allocation.SellThreshold),
		basis:         basis,
		fitter:        allocation.NewBudgetFitter(priceRepo, cfg.Allocation.PriceConcurrency, cfg.Allocation.ShrinkDelay, log),
	}, nil
}

func (s *recommendationService) Recommend(ctx context.Context, param dto.RecommendationParam) (*dto.RecommendationResult, error) {
	if param.Budget < 0 || math.IsNaN(param.Budget) || math.IsInf(param.Budget, 0) {
		return nil, ErrInvalidBudget
	}

	startedAt := time.Now()
	ctx = logger.NewContext(ctx, s.log.With(
		logger.StringField("trigger", param.Trigger),
		logger.StringField("news_date", utils.FormatDate(param.NewsDate)),
	))
	log := s.log.FromContext(ctx)

	universe := s.universe(ctx, param.ExtraTickers)
	log.InfoContext(ctx, "resolved ticker universe", logger.StringsField("tickers", universe))

	positive := s.fetchSentiment(ctx, universe, dto.DirectionPositive, param.NewsDate)
	negative := s.fetchSentiment(ctx, universe, dto.DirectionNegative, param.NewsDate)

	positive, negative = allocation.Reconcile(positive, negative)
	positive = allocation.FilterSymbols(positive)
	negative = allocation.FilterSymbols(negative)

	sells, candidates := s.classifier.Classify(append(append([]allocation.Observation{}, positive...), negative...))
	sells = allocation.UniqueSymbols(sells)
	buys := allocation.Aggregate(candidates, s.basis)
	buys = dropSold(ctx, log, sells, buys)
	log.InfoContext(ctx, "classified signals",
		logger.IntField("positive", len(positive)),
		logger.IntField("negative", len(negative)),
		logger.IntField("sells", len(sells)),
		logger.IntField("buys", len(buys)),
	)

	fit := s.fitter.Fit(ctx, buys, param.Budget)
	log.InfoContext(ctx, "fitted buy list to budget",
		logger.Float64Field("budget", param.Budget),
		logger.Float64Field("total_cost", fit.TotalCost),
		logger.IntField("trim_steps", fit.Steps),
	)

	result := &dto.RecommendationResult{
		Trigger:    param.Trigger,
		NewsDate:   utils.FormatDate(param.NewsDate),
		Budget:     param.Budget,
		Universe:   universe,
		Sells:      sells,
		Buys:       positions(fit),
		TotalCost:  fit.TotalCost,
		TrimSteps:  fit.Steps,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}

	s.saveRun(ctx, result)
	log.InfoContext(ctx, "recommendation finished", logger.DurationField("elapsed", result.FinishedAt.Sub(startedAt)))
	s.metrics.RecordAllocation(param.Budget, fit.TotalCost, fit.Steps, len(sells), len(result.Buys))
	s.metrics.RecordRun(param.Trigger, common.OUTCOME_SUCCESS, result.FinishedAt.Sub(startedAt).Seconds())
	return result, nil
}

func (s *recommendationService) universe(ctx context.Context, extra []string) []string {
	trending, err := s.trendingRepo.GetTopTickers(ctx, s.cfg.Discovery.Count)
	if err != nil {
		s.metrics.RecordCollaboratorFailure(common.SOURCE_TRENDING)
		s.log.WarnContext(ctx, "trending tickers unavailable, continuing with extra tickers only",
			logger.ErrorField(err),
		)
		trending = nil
	}
	return allocation.NormalizeSymbols(append(append([]string{}, trending...), extra...))
}

func (s *recommendationService) fetchSentiment(ctx context.Context, symbols []string, direction dto.SentimentDirection, date time.Time) []allocation.Observation {
	observations, err := s.sentimentRepo.Fetch(ctx, symbols, direction, date)
	if err != nil {
		s.metrics.RecordCollaboratorFailure(common.SOURCE_MARKETAUX)
		s.log.WarnContext(ctx, "sentiment unavailable, treating as no news",
			logger.StringField("direction", string(direction)),
			logger.ErrorField(err),
		)
		return []allocation.Observation{}
	}
	s.metrics.RecordObservations(string(direction), len(observations))
	return observations
}

// dropSold keeps a ticker out of the buy list when it is also being sold.
func dropSold(ctx context.Context, log *logger.Logger, sells []string, buys []allocation.BuyEntry) []allocation.BuyEntry {
	if len(sells) == 0 {
		return buys
	}
	out := make([]allocation.BuyEntry, 0, len(buys))
	for _, b := range buys {
		if utils.ContainsString(sells, b.Symbol) {
			log.WarnContext(ctx, "ticker has both buy and sell signals, keeping sell", logger.StringField("symbol", b.Symbol))
			continue
		}
		out = append(out, b)
	}
	return out
}

func positions(fit allocation.FitResult) []dto.BuyPosition {
	out := make([]dto.BuyPosition, 0, len(fit.Buys))
	for _, b := range fit.Buys {
		price := fit.Prices[b.Symbol]
		out = append(out, dto.BuyPosition{
			Symbol: b.Symbol,
			Shares: b.Shares,
			Price:  price,
			Cost:   price * float64(b.Shares),
		})
	}
	return out
}

func (s *recommendationService) saveRun(ctx context.Context, result *dto.RecommendationResult) {
	run, err := toRunModel(result)
	if err == nil {
		err = s.runRepo.Create(ctx, run)
	}
	if err != nil {
		s.metrics.RecordCollaboratorFailure(common.SOURCE_HISTORY)
		s.log.WarnContext(ctx, "failed to save recommendation run", logger.ErrorField(err))
		return
	}
	result.RunID = run.ID
}

func (s *recommendationService) History(ctx context.Context, limit int) ([]dto.RecommendationResult, error) {
	runs, err := s.runRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendation runs: %w", err)
	}
	out := make([]dto.RecommendationResult, 0, len(runs))
	for i := range runs {
		result, err := fromRunModel(&runs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *result)
	}
	return out, nil
}

func toRunModel(result *dto.RecommendationResult) (*model.RecommendationRun, error) {
	universe, err := json.Marshal(result.Universe)
	if err != nil {
		return nil, fmt.Errorf("marshal universe: %w", err)
	}
	sells, err := json.Marshal(result.Sells)
	if err != nil {
		return nil, fmt.Errorf("marshal sells: %w", err)
	}
	buys, err := json.Marshal(result.Buys)
	if err != nil {
		return nil, fmt.Errorf("marshal buys: %w", err)
	}
	newsDate, err := utils.ParseDate(result.NewsDate)
	if err != nil {
		return nil, err
	}
	return &model.RecommendationRun{
		Trigger:    result.Trigger,
		NewsDate:   newsDate,
		Budget:     result.Budget,
		TotalCost:  result.TotalCost,
		TrimSteps:  result.TrimSteps,
		Universe:   universe,
		Sells:      sells,
		Buys:       buys,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
	}, nil
}

func fromRunModel(run *model.RecommendationRun) (*dto.RecommendationResult, error) {
	result := &dto.RecommendationResult{
		RunID:      run.ID,
		Trigger:    run.Trigger,
		NewsDate:   utils.FormatDate(run.NewsDate),
		Budget:     run.Budget,
		TotalCost:  run.TotalCost,
		TrimSteps:  run.TrimSteps,
		Universe:   []string{},
		Sells:      []string{},
		Buys:       []dto.BuyPosition{},
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
	}
	for _, f := range []struct {
		raw []byte
		dst interface{}
	}{
		{run.Universe, &result.Universe},
		{run.Sells, &result.Sells},
		{run.Buys, &result.Buys},
	} {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, fmt.Errorf("decode run %d: %w", run.ID, err)
		}
	}
	return result, nil
}
