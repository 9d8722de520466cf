package app

import (
	"context"
	"time"

	"github.com/nasirkjkhan/kaspa-alert-bot/internal/config"
	"github.com/nasirkjkhan/kaspa-alert-bot/internal/delivery/telegram"
	"github.com/nasirkjkhan/kaspa-alert-bot/internal/infra/db"
	"github.com/nasirkjkhan/kaspa-alert-bot/internal/infra/kaspa"
	"github.com/nasirkjkhan/kaspa-alert-bot/internal/infra/kasplex"
	"github.com/nasirkjkhan/kaspa-alert-bot/internal/infra/log"
	"github.com/nasirkjkhan/kaspa-alert-bot/internal/usecase"
	"go.uber.org/zap"
)

type App struct {
	bot         *telegram.Bot
	monitor     *usecase.Monitor
	logger      *zap.Logger
	monitorDone chan struct{}
	cleanupFn   func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := log.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	dbConn, err := db.Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	userRepo := db.NewUserRepository(dbConn)
	kaspaClient := kaspa.NewClient(cfg.KaspaAPIBaseURL, cfg.SourceAPITimeout, logger)
	kasplexClient := kasplex.NewClient(cfg.KasplexAPIBaseURL, cfg.SourceAPITimeout, logger)

	api, err := telegram.NewAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, err
	}

	notifier := telegram.NewNotifier(api, logger)
	monitor := usecase.NewMonitor(userRepo, kaspaClient, kasplexClient, notifier, usecase.MonitorConfig{
		Interval:          cfg.CheckInterval(),
		SourcePause:       cfg.SourcePause,
		UserPause:         cfg.UserPause,
		ExplorerTxBaseURL: cfg.ExplorerTxBaseURL,
	}, logger)

	userUC := usecase.NewUserUsecase(userRepo)
	handlers := telegram.NewHandlers(userUC, logger)
	bot := telegram.NewBot(api, handlers, cfg.TelegramPollTimeout)

	cleanup := func() error {
		sqlDB, err := dbConn.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return &App{
		bot:         bot,
		monitor:     monitor,
		logger:      logger,
		monitorDone: make(chan struct{}),
		cleanupFn:   cleanup,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("kaspa alert bot starting")

	go func() {
		defer close(a.monitorDone)
		a.monitor.Run(ctx)
	}()

	a.logger.Info("kaspa alert bot started")
	return a.bot.Start(ctx)
}

func (a *App) Shutdown() {
	a.logger.Info("kaspa alert bot shutting down")
	select {
	case <-a.monitorDone:
	case <-time.After(5 * time.Second):
		a.logger.Warn("timeout waiting for monitor to stop")
	}
	if a.cleanupFn != nil {
		if err := a.cleanupFn(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
