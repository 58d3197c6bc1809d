package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"sentiment-trading/config"
	"sentiment-trading/internal/dto"
	"sentiment-trading/pkg/common"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/utils"
)

// SchedulerService runs the recommendation pipeline on a cron schedule and
// reports each run through a ReportNotifier.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
	RunOnce(ctx context.Context) (*dto.RecommendationResult, error)
}

type schedulerService struct {
	cfg            *config.Config
	log            *logger.Logger
	cronParser     cron.Parser
	cron           *cron.Cron
	recommendation RecommendationService
	notifier       ReportNotifier
	now            func() time.Time
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	recommendation RecommendationService,
	notifier ReportNotifier,
) *schedulerService {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &schedulerService{
		cfg:            cfg,
		log:            log,
		cronParser:     parser,
		cron:           cron.New(cron.WithParser(parser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		recommendation: recommendation,
		notifier:       notifier,
		now:            time.Now,
	}
}

// Start registers the configured schedule. An empty expression leaves the
// scheduler idle.
func (s *schedulerService) Start(ctx context.Context) error {
	if s.cfg.Scheduler.Cron == "" {
		s.log.Info("scheduler disabled, no cron expression configured")
		return nil
	}

	schedule, err := s.cronParser.Parse(s.cfg.Scheduler.Cron)
	if err != nil {
		return fmt.Errorf("failed to parse cron expression %q: %w", s.cfg.Scheduler.Cron, err)
	}

	s.cron.Schedule(schedule, cron.FuncJob(func() {
		if !utils.ShouldContinue(ctx, s.log) {
			return
		}
		runCtx, cancel := context.WithTimeout(ctx, s.cfg.Scheduler.TimeoutDuration)
		defer cancel()
		if _, err := s.RunOnce(runCtx); err != nil {
			s.log.ErrorContext(runCtx, "scheduled recommendation failed", logger.ErrorField(err))
		}
	}))
	s.cron.Start()

	s.log.Info("scheduler started",
		logger.StringField("cron", s.cfg.Scheduler.Cron),
		logger.Field("next_run", schedule.Next(s.now())),
	)
	return nil
}

func (s *schedulerService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunOnce recommends against news from DateOffsetDays ago and sends the report.
func (s *schedulerService) RunOnce(ctx context.Context) (*dto.RecommendationResult, error) {
	param := dto.RecommendationParam{
		Budget:       s.cfg.Scheduler.Budget,
		NewsDate:     utils.DaysBefore(s.now(), s.cfg.Scheduler.DateOffsetDays),
		ExtraTickers: s.cfg.Scheduler.ExtraTickers,
		Trigger:      common.TRIGGER_SCHEDULER,
	}

	result, err := s.recommendation.Recommend(ctx, param)
	if err != nil {
		if notifyErr := s.notifier.NotifyError(ctx, "scheduled recommendation", err); notifyErr != nil {
			s.log.WarnContext(ctx, "failed to send error alert", logger.ErrorField(notifyErr))
		}
		return nil, err
	}

	if err := s.notifier.NotifyReport(ctx, result); err != nil {
		s.log.WarnContext(ctx, "failed to send recommendation report", logger.ErrorField(err))
	}
	return result, nil
}
