// Package telegram adapts the conversation dispatcher to the Telegram Bot
// API: long-polled updates in, messages and keyboards out.
package telegram

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dandanapp/dandanbot/pkg/conversation"
)

// cancelPhrase is the natural-language equivalent of /cancel.
const cancelPhrase = "لغو"

// ServiceConfig holds the parameters needed to construct a Service.
type ServiceConfig struct {
	Token       string
	PollTimeout int // seconds, for getUpdates long polling
	Debug       bool
}

// Service runs the update loop and delivers dispatcher replies.
// Send failures are logged and never stop the loop.
type Service struct {
	bot         *tgbotapi.BotAPI
	dispatcher  *conversation.Dispatcher
	pollTimeout int
	logger      *slog.Logger
}

// NewService authenticates against the Bot API and wires the dispatcher.
func NewService(cfg ServiceConfig, dispatcher *conversation.Dispatcher) (*Service, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	bot.Debug = cfg.Debug

	return &Service{
		bot:         bot,
		dispatcher:  dispatcher,
		pollTimeout: cfg.PollTimeout,
		logger:      slog.Default().With("component", "telegram-service"),
	}, nil
}

// Username returns the authenticated bot account name.
func (s *Service) Username() string {
	return s.bot.Self.UserName
}

// Run consumes updates until ctx is cancelled. Each update is processed to
// completion before the next one is read, so per-user events stay ordered.
func (s *Service) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = s.pollTimeout

	updates := s.bot.GetUpdatesChan(u)
	s.logger.Info("Polling for updates", "bot", s.bot.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			s.bot.StopReceivingUpdates()
			s.logger.Info("Update loop stopped")
			return
		case update, ok := <-updates:
			if !ok {
				s.logger.Info("Updates channel closed")
				return
			}
			s.handleUpdate(ctx, update)
		}
	}
}

func (s *Service) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		s.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		s.handleMessage(ctx, update.Message)
	}
}

func (s *Service) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	userID := msg.From.ID

	var replies []conversation.Reply
	switch {
	case msg.IsCommand():
		replies = s.dispatcher.HandleCommand(ctx, userID, commandName(msg.Command()))
	case strings.TrimSpace(msg.Text) == cancelPhrase:
		replies = s.dispatcher.HandleCommand(ctx, userID, conversation.CommandCancel)
	default:
		replies = s.dispatcher.HandleText(ctx, userID, msg.Text)
	}

	s.deliver(msg.Chat.ID, replies)
}

func (s *Service) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	replies, ack := s.dispatcher.HandleSelection(ctx, cq.From.ID, cq.Data)

	// Callbacks must always be answered or the client keeps a spinner up.
	if _, err := s.bot.Request(tgbotapi.NewCallback(cq.ID, ack)); err != nil {
		s.logger.Warn("Failed to answer callback query", "user_id", cq.From.ID, "error", err)
	}

	s.deliver(cq.From.ID, replies)
}

// deliver sends replies in order; a failed send is logged and skipped so the
// remaining chunks still go out.
func (s *Service) deliver(chatID int64, replies []conversation.Reply) {
	for _, reply := range replies {
		msg := tgbotapi.NewMessage(chatID, reply.Text)
		if markup := replyMarkup(reply); markup != nil {
			msg.ReplyMarkup = markup
		}
		if _, err := s.bot.Send(msg); err != nil {
			s.logger.Error("Failed to send message", "chat_id", chatID, "error", err)
		}
	}
}

// commandName maps an unknown Telegram command to the empty dispatcher
// command, which yields no reply.
func commandName(cmd string) string {
	switch cmd {
	case conversation.CommandStart, conversation.CommandAdd,
		conversation.CommandView, conversation.CommandCancel:
		return cmd
	}
	return ""
}
