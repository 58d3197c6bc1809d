package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentiment-trading/config"
	"sentiment-trading/internal/dto"
	"sentiment-trading/pkg/common"
	"sentiment-trading/pkg/logger"
)

func schedulerConfig(cron string) *config.Config {
	cfg := testConfig()
	cfg.Scheduler = config.Scheduler{
		Cron:            cron,
		Budget:          2500,
		ExtraTickers:    []string{"AAPL", "MSFT"},
		DateOffsetDays:  1,
		TimeoutDuration: time.Minute,
	}
	return cfg
}

func TestSchedulerService_RunOnce(t *testing.T) {
	rec := &fakeRecommendationService{result: &dto.RecommendationResult{NewsDate: "2024-02-29"}}
	notifier := &fakeNotifier{}
	s := NewSchedulerService(schedulerConfig(""), logger.NewNop(), rec, notifier)
	s.now = func() time.Time { return time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC) }

	got, err := s.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Same(t, rec.result, got)
	assert.Equal(t, 2500.0, rec.gotParam.Budget)
	assert.Equal(t, []string{"AAPL", "MSFT"}, rec.gotParam.ExtraTickers)
	assert.Equal(t, common.TRIGGER_SCHEDULER, rec.gotParam.Trigger)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), rec.gotParam.NewsDate)
	assert.Len(t, notifier.reports, 1)
	assert.Empty(t, notifier.errs)
}

func TestSchedulerService_RunOnceError(t *testing.T) {
	rec := &fakeRecommendationService{err: errors.New("boom")}
	notifier := &fakeNotifier{}
	s := NewSchedulerService(schedulerConfig(""), logger.NewNop(), rec, notifier)

	_, err := s.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Empty(t, notifier.reports)
	assert.Equal(t, []string{"scheduled recommendation: boom"}, notifier.errs)
}

func TestSchedulerService_Start(t *testing.T) {
	tests := []struct {
		name    string
		cron    string
		wantErr bool
	}{
		{name: "disabled", cron: ""},
		{name: "daily", cron: "30 13 * * 1-5"},
		{name: "descriptor", cron: "@daily"},
		{name: "invalid", cron: "every morning", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSchedulerService(schedulerConfig(tt.cron), logger.NewNop(), &fakeRecommendationService{}, &fakeNotifier{})
			err := s.Start(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			s.Stop()
		})
	}
}

func TestTelegramReportNotifier(t *testing.T) {
	sender := &fakeMessageSender{}
	n := NewTelegramReportNotifier(sender, 99)

	require.NoError(t, n.NotifyReport(context.Background(), &dto.RecommendationResult{
		NewsDate:   "2023-12-22",
		Budget:     1000,
		TotalCost:  970,
		Sells:      []string{"TSLA"},
		Buys:       []dto.BuyPosition{{Symbol: "XYZ", Shares: 6, Price: 120, Cost: 720}},
		FinishedAt: time.Date(2023, 12, 23, 9, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, n.NotifyError(context.Background(), "scheduled recommendation", errors.New("boom")))

	assert.Equal(t, int64(99), sender.chatID)
	require.Len(t, sender.messages, 2)
	assert.Contains(t, sender.messages[0], "XYZ: 6 shares @ 120\\.00")
	assert.Contains(t, sender.messages[1], "boom")
}
