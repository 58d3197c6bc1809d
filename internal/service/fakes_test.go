package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"sentiment-trading/internal/allocation"
	"sentiment-trading/internal/dto"
	"sentiment-trading/internal/model"
	"sentiment-trading/internal/repository"
	"sentiment-trading/pkg/utils"
)

type fakeTrendingRepo struct {
	tickers []string
	err     error
}

func (f *fakeTrendingRepo) GetTopTickers(_ context.Context, count int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if count < len(f.tickers) {
		return f.tickers[:count], nil
	}
	return f.tickers, nil
}

type fakeSentimentRepo struct {
	byDirection map[dto.SentimentDirection][]allocation.Observation
	err         error
	gotSymbols  []string
	gotDate     time.Time
}

func (f *fakeSentimentRepo) Fetch(_ context.Context, symbols []string, direction dto.SentimentDirection, date time.Time) ([]allocation.Observation, error) {
	f.gotSymbols = symbols
	f.gotDate = date
	if f.err != nil {
		return nil, f.err
	}
	return f.byDirection[direction], nil
}

type fakePriceRepo struct {
	prices map[string]float64
}

func (f *fakePriceRepo) GetPrice(_ context.Context, symbol string) (float64, error) {
	p, ok := f.prices[symbol]
	if !ok {
		return 0, repository.ErrPriceNotFound
	}
	return p, nil
}

type fakeRunRepo struct {
	mu        sync.Mutex
	runs      []model.RecommendationRun
	createErr error
}

func (f *fakeRunRepo) Create(_ context.Context, run *model.RecommendationRun, _ ...utils.DBOption) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	run.ID = uint(len(f.runs) + 1)
	f.runs = append(f.runs, *run)
	return nil
}

func (f *fakeRunRepo) List(_ context.Context, limit int, _ ...utils.DBOption) ([]model.RecommendationRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.RecommendationRun{}
	for i := len(f.runs) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, f.runs[i])
	}
	return out, nil
}

type fakeRecommendationService struct {
	gotParam dto.RecommendationParam
	result   *dto.RecommendationResult
	err      error
}

func (f *fakeRecommendationService) Recommend(_ context.Context, param dto.RecommendationParam) (*dto.RecommendationResult, error) {
	f.gotParam = param
	return f.result, f.err
}

func (f *fakeRecommendationService) History(context.Context, int) ([]dto.RecommendationResult, error) {
	return nil, errors.New("not implemented")
}

type fakeNotifier struct {
	reports []*dto.RecommendationResult
	errs    []string
}

func (f *fakeNotifier) NotifyReport(_ context.Context, result *dto.RecommendationResult) error {
	f.reports = append(f.reports, result)
	return nil
}

func (f *fakeNotifier) NotifyError(_ context.Context, errType string, err error) error {
	f.errs = append(f.errs, errType+": "+err.Error())
	return nil
}

type fakeMessageSender struct {
	chatID   int64
	messages []string
}

func (f *fakeMessageSender) SendMessage(_ context.Context, chatID int64, message string) error {
	f.chatID = chatID
	f.messages = append(f.messages, message)
	return nil
}
