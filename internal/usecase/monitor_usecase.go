package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nasirkjkhan/kaspa-alert-bot/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// errWatermarkNotFound marks a stored native txid that is absent from the
// current fetch window. The user's pass is skipped with a warning; the
// watermark stays untouched so a later window can line up again.
var errWatermarkNotFound = errors.New("stored txid not in fetch window")

type Notifier interface {
	Notify(telegramUserID int64, text string) error
}

type MonitorConfig struct {
	Interval          time.Duration
	SourcePause       time.Duration
	UserPause         time.Duration
	ExplorerTxBaseURL string
}

// Monitor is the polling loop: every Interval it reads the polled set and
// runs the native and token pipelines for each user sequentially. Failures
// are contained per user and per cycle; the loop only returns on context
// cancellation.
type Monitor struct {
	users    domain.UserRepository
	kaspa    domain.KaspaClient
	kasplex  domain.KasplexClient
	notifier Notifier
	cfg      MonitorConfig
	logger   *zap.Logger
}

func NewMonitor(users domain.UserRepository, kaspa domain.KaspaClient, kasplex domain.KasplexClient, notifier Notifier, cfg MonitorConfig, logger *zap.Logger) *Monitor {
	return &Monitor{
		users:    users,
		kaspa:    kaspa,
		kasplex:  kasplex,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

func (m *Monitor) Run(ctx context.Context) {
	m.logger.Info("monitor started", zap.Duration("interval", m.cfg.Interval))
	for {
		m.RunCycle(ctx)
		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopped")
			return
		case <-time.After(m.cfg.Interval):
		}
	}
}

// RunCycle processes every subscription with an address once. A failed
// subscription read abandons the cycle; the next one retries.
func (m *Monitor) RunCycle(ctx context.Context) {
	users, err := m.users.ListWithAddress(ctx)
	if err != nil {
		m.logger.Error("failed to list monitored users", zap.Error(err))
		return
	}

	for _, user := range users {
		if ctx.Err() != nil {
			return
		}
		if err := m.processUser(ctx, user); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			m.logger.Error(
				"user processing failed",
				zap.Int64("telegram_user_id", user.TelegramUserID),
				zap.Error(err),
			)
		}
		if !m.pause(ctx, m.cfg.UserPause) {
			return
		}
	}
}

// processUser runs both pipelines for one user. A native failure ends the
// user's pass before the token pipeline runs; a token failure affects only
// the token pipeline.
func (m *Monitor) processUser(ctx context.Context, user domain.User) error {
	err := m.runNativePipeline(ctx, user)
	if errors.Is(err, errWatermarkNotFound) {
		m.logger.Warn(
			"last kas txid not found in fetch window, skipping alerts",
			zap.Int64("telegram_user_id", user.TelegramUserID),
			zap.String("address", *user.KaspaAddress),
		)
		return nil
	}
	if err != nil {
		return err
	}

	if !m.pause(ctx, m.cfg.SourcePause) {
		return ctx.Err()
	}

	if user.HasTicker() {
		return m.runTokenPipeline(ctx, user)
	}
	return nil
}

func (m *Monitor) runNativePipeline(ctx context.Context, user domain.User) error {
	address := *user.KaspaAddress
	transfers, err := m.kaspa.IncomingTransactions(ctx, address)
	if err != nil {
		return err
	}

	lastTxID := ""
	if user.LastKasTxID != nil {
		lastTxID = *user.LastKasTxID
	}

	fresh, _, found := DiffByTxID(transfers, lastTxID)
	if !found {
		return errWatermarkNotFound
	}

	// The watermark tracks the last iterated entry, not the last confirmed
	// delivery: a failed send is logged and never retried.
	newLast := lastTxID
	for _, t := range fresh {
		if ctx.Err() != nil {
			break
		}
		if err := m.notifier.Notify(user.TelegramUserID, m.formatNativeAlert(t)); err != nil {
			m.logger.Warn("failed to send kas alert", zap.Int64("telegram_user_id", user.TelegramUserID), zap.Error(err))
		} else {
			m.logger.Info("sent kas alert", zap.Int64("telegram_user_id", user.TelegramUserID), zap.String("txid", t.TxID))
		}
		newLast = t.TxID
	}

	if newLast != lastTxID {
		if err := m.users.SetLastKasTxID(ctx, user.TelegramUserID, newLast); err != nil {
			return fmt.Errorf("persist kas watermark: %w", err)
		}
	}
	return ctx.Err()
}

func (m *Monitor) runTokenPipeline(ctx context.Context, user domain.User) error {
	address := *user.KaspaAddress
	ticker := *user.KRC20Ticker
	transfers, err := m.kasplex.IncomingTransfers(ctx, address, ticker)
	if err != nil {
		return err
	}

	var lastTs int64
	if user.LastKRC20Ts != nil {
		lastTs = *user.LastKRC20Ts
	}

	fresh, _ := DiffByTime(transfers, lastTs)

	newLast := lastTs
	for _, t := range fresh {
		if ctx.Err() != nil {
			break
		}
		if err := m.notifier.Notify(user.TelegramUserID, m.formatTokenAlert(t)); err != nil {
			m.logger.Warn("failed to send krc20 alert", zap.Int64("telegram_user_id", user.TelegramUserID), zap.Error(err))
		} else {
			m.logger.Info("sent krc20 alert", zap.Int64("telegram_user_id", user.TelegramUserID), zap.String("txid", t.TxID))
		}
		if t.Time > newLast {
			newLast = t.Time
		}
	}

	if newLast != lastTs {
		if err := m.users.SetLastKRC20Ts(ctx, user.TelegramUserID, newLast); err != nil {
			return fmt.Errorf("persist krc20 watermark: %w", err)
		}
	}
	return ctx.Err()
}

// pause sleeps for d unless the context ends first; false means shutdown.
func (m *Monitor) pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

// 10^8 sompi per KAS.
var sompiPerKas = decimal.New(1, 8)

func (m *Monitor) formatNativeAlert(t domain.Transfer) string {
	amount, err := decimal.NewFromString(t.Amount)
	if err != nil {
		amount = decimal.Zero
	}
	kas := amount.Div(sompiPerKas).StringFixed(4)
	return fmt.Sprintf(
		"Received %s KAS from %s\nTxID: %s\n%s/%s",
		kas, t.From, t.TxID, m.cfg.ExplorerTxBaseURL, t.TxID,
	)
}

func (m *Monitor) formatTokenAlert(t domain.Transfer) string {
	return fmt.Sprintf(
		"Received %s %s from %s\nTxID: %s\n%s/%s",
		t.Amount, t.Ticker, t.From, t.TxID, m.cfg.ExplorerTxBaseURL, t.TxID,
	)
}
