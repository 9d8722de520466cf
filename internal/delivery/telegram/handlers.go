package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nasirkjkhan/kaspa-alert-bot/internal/domain"
	"github.com/nasirkjkhan/kaspa-alert-bot/internal/usecase"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const welcomeText = "Welcome to the Kaspa Alert Bot! Get alerts for incoming KAS and KRC20 transfers."

type Handlers struct {
	userUC *usecase.UserUsecase
	logger *zap.Logger
}

func NewHandlers(userUC *usecase.UserUsecase, logger *zap.Logger) *Handlers {
	return &Handlers{userUC: userUC, logger: logger}
}

func (h *Handlers) HandleUpdate(ctx context.Context, api *tgbotapi.BotAPI, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.handleCallback(ctx, api, update.CallbackQuery)
		return
	}
	if update.Message == nil {
		return
	}
	if update.Message.From == nil {
		return
	}
	if update.Message.IsCommand() {
		h.handleCommand(ctx, api, update)
		return
	}
}

func (h *Handlers) handleCommand(ctx context.Context, api *tgbotapi.BotAPI, update tgbotapi.Update) {
	command := update.Message.Command()
	args := update.Message.CommandArguments()
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID
	username := update.Message.From.UserName

	h.logger.Info(
		"telegram command received",
		zap.Int64("chat_id", chatID),
		zap.Int64("telegram_user_id", userID),
		zap.String("username", username),
		zap.String("command", command),
	)

	switch command {
	case "start":
		if _, err := h.userUC.StartOrGetUser(ctx, userID, username); err != nil {
			h.logger.Warn("start command failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
			h.reply(api, chatID, "Failed to register. Please try again.")
			return
		}
		h.logger.Info("start command complete", zap.Int64("telegram_user_id", userID))
		msg := tgbotapi.NewMessage(chatID, welcomeText)
		msg.ReplyMarkup = mainMenuKeyboard()
		h.send(api, msg)
	case "help":
		h.reply(api, chatID, HelpText)
	case "setaddress":
		address, err := ParseAddressArg(args)
		if err != nil {
			if strings.TrimSpace(args) == "" {
				h.reply(api, chatID, "Usage: /setaddress <kaspa:address>")
				return
			}
			h.reply(api, chatID, "Invalid Kaspa address. It must start with 'kaspa:' and be between 65 and 85 characters long.")
			return
		}
		if err := h.userUC.SetAddress(ctx, userID, username, address); err != nil {
			h.logger.Warn("setaddress failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.logger.Info("setaddress complete", zap.Int64("telegram_user_id", userID))
		h.reply(api, chatID, fmt.Sprintf("Kaspa address set to: %s", address))
	case "setkrc20":
		ticker, err := ParseTickerArg(args)
		if err != nil {
			h.reply(api, chatID, "Usage: /setkrc20 <TICKER>")
			return
		}
		if err := h.userUC.SetTicker(ctx, userID, ticker); err != nil {
			h.logger.Warn("setkrc20 failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.logger.Info("setkrc20 complete", zap.Int64("telegram_user_id", userID), zap.String("ticker", ticker))
		h.reply(api, chatID, fmt.Sprintf("KRC20 ticker set to: %s", ticker))
	case "mystatus":
		user, err := h.userUC.Status(ctx, userID)
		if err != nil {
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.reply(api, chatID, formatStatus(user))
	case "removeaddress":
		if err := h.userUC.RemoveAddress(ctx, userID); err != nil {
			h.logger.Warn("removeaddress failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.logger.Info("removeaddress complete", zap.Int64("telegram_user_id", userID))
		h.reply(api, chatID, "Kaspa address and related data removed.")
	case "removekrc20":
		if err := h.userUC.RemoveTicker(ctx, userID); err != nil {
			h.logger.Warn("removekrc20 failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.logger.Info("removekrc20 complete", zap.Int64("telegram_user_id", userID))
		h.reply(api, chatID, "KRC20 ticker monitoring removed.")
	default:
		h.logger.Warn("unknown command", zap.Int64("telegram_user_id", userID), zap.String("command", command))
		h.reply(api, chatID, "Unknown command.\n\n"+HelpText)
	}
}

func (h *Handlers) handleCallback(ctx context.Context, api *tgbotapi.BotAPI, query *tgbotapi.CallbackQuery) {
	if query.Message == nil || query.From == nil {
		return
	}
	chatID := query.Message.Chat.ID
	userID := query.From.ID

	h.logger.Info(
		"telegram callback received",
		zap.Int64("telegram_user_id", userID),
		zap.String("data", query.Data),
	)

	if _, err := api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		h.logger.Warn("failed to answer callback", zap.Error(err))
	}

	switch query.Data {
	case "set_address":
		h.reply(api, chatID, "To set your Kaspa address, use:\n/setaddress <kaspa:address>")
	case "set_krc20":
		h.reply(api, chatID, "To set your KRC20 ticker, use:\n/setkrc20 <TICKER>")
	case "my_status":
		user, err := h.userUC.Status(ctx, userID)
		if err != nil {
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.reply(api, chatID, formatStatus(user))
	case "help":
		h.reply(api, chatID, HelpText)
	}
}

func (h *Handlers) errorMessage(err error) string {
	if errors.Is(err, usecase.ErrUserNotRegistered) {
		return "No settings found. Use /setaddress to start."
	}

	h.logger.Warn("unhandled error", zap.Error(err))
	return "Something went wrong. Please try again."
}

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Set Kaspa Address", "set_address")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Set KRC20 Token (optional)", "set_krc20")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("My Status", "my_status")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Help", "help")),
	)
}

func formatStatus(user *domain.User) string {
	var builder strings.Builder
	builder.WriteString("Your Status:\n")
	builder.WriteString(fmt.Sprintf("Kaspa Address: %s\n", orPlaceholder(user.KaspaAddress, "Not set")))
	builder.WriteString(fmt.Sprintf("KRC20 Ticker: %s\n", orPlaceholder(user.KRC20Ticker, "Not set")))
	builder.WriteString(fmt.Sprintf("Last seen KAS TxID: %s\n", orPlaceholder(user.LastKasTxID, "None")))
	if user.LastKRC20Ts != nil {
		builder.WriteString(fmt.Sprintf("Last seen KRC20 transfer time: %d\n", *user.LastKRC20Ts))
	} else {
		builder.WriteString("Last seen KRC20 transfer time: None\n")
	}
	return builder.String()
}

func orPlaceholder(value *string, placeholder string) string {
	if value == nil || *value == "" {
		return placeholder
	}
	return *value
}

func (h *Handlers) reply(api *tgbotapi.BotAPI, chatID int64, text string) {
	h.send(api, tgbotapi.NewMessage(chatID, text))
}

func (h *Handlers) send(api *tgbotapi.BotAPI, msg tgbotapi.MessageConfig) {
	if _, err := api.Send(msg); err != nil {
		h.logger.Warn("failed to send message", zap.Error(err))
	}
}
