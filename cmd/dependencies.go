package cmd

import (
	"context"
	"fmt"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"sentiment-trading/config"
	"sentiment-trading/internal/repository"
	"sentiment-trading/internal/service"
	"sentiment-trading/pkg/cache"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/metrics"
	"sentiment-trading/pkg/postgres"
	"sentiment-trading/pkg/telegram"
)

type AppDependency struct {
	db        *postgres.DB
	cfg       *config.Config
	log       *logger.Logger
	validator *goValidator.Validate
	echo      *echo.Echo
	cache     cache.Cache
	metrics   *metrics.Metrics
	notifier  service.ReportNotifier
}

// NewAppDependency loads config and opens the optional database and Telegram
// connections. Both stay nil unless enabled in config.
func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}

	var db *postgres.DB
	if cfg.DB.Enabled {
		db, err = postgres.NewDB(cfg.DB, log)
		if err != nil {
			log.Error("failed to connect to database", logger.ErrorField(err))
			return nil, err
		}
	}

	var notifier service.ReportNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		bot, err := telegram.NewBot(cfg.Telegram)
		if err != nil {
			log.Error("failed to create telegram bot", logger.ErrorField(err))
			return nil, err
		}
		notifier = service.NewTelegramReportNotifier(telegram.NewNotifier(cfg.Telegram, bot, log), cfg.Telegram.ChatID)
	}

	e := echo.New()
	e.HideBanner = true
	return &AppDependency{
		cfg:       cfg,
		log:       log,
		validator: goValidator.New(),
		db:        db,
		echo:      e,
		cache:     cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval),
		metrics:   metrics.New(),
		notifier:  notifier,
	}, nil
}

// Services wires repositories and services on top of the dependencies.
func (d *AppDependency) Services() (*service.Service, error) {
	repo := repository.NewRepository(d.cfg, d.gormDB(), d.cache, d.log, d.metrics.RecordCollaboratorFailure)
	services, err := service.NewService(d.cfg, d.log, d.metrics, repo, d.notifier)
	if err != nil {
		return nil, fmt.Errorf("failed to create services: %w", err)
	}
	return services, nil
}

func (d *AppDependency) gormDB() *gorm.DB {
	if d.db == nil {
		return nil
	}
	return d.db.DB
}

func (d *AppDependency) Close() error {
	d.log.Info("closing app dependency")
	defer func() { _ = d.log.Sync() }()
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
