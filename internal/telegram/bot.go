// Package telegram is the chat transport: long polling in, messages with
// reply keyboards out. All conversational logic lives in the dialog engine.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kuryanov322-creator/kind-energy-bot/internal/dialog"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	engine *dialog.Engine
	log    *zap.SugaredLogger
}

func New(token string, engine *dialog.Engine, log *zap.SugaredLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram session: %w", err)
	}
	log.Infow("telegram bot connected", "username", api.Self.UserName)
	return &Bot{api: api, engine: engine, log: log}, nil
}

// Run polls for updates until Stop is called. Updates are handled
// sequentially so a user's messages are interpreted in arrival order;
// delayed follow-ups still go out asynchronously.
func (b *Bot) Run() {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	for update := range b.api.GetUpdatesChan(cfg) {
		m := update.Message
		if m == nil || m.From == nil || m.Text == "" {
			continue
		}
		b.handle(m)
	}
}

func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

func (b *Bot) handle(m *tgbotapi.Message) {
	userID := strconv.FormatInt(m.From.ID, 10)
	chatID := m.Chat.ID

	var replies []dialog.Reply
	if m.IsCommand() {
		if m.Command() != "start" {
			return
		}
		replies = b.engine.Start(userID, chatID)
	} else {
		replies = b.engine.HandleText(context.Background(), userID, chatID, m.Text)
	}

	for _, r := range replies {
		if r.After > 0 {
			go func(r dialog.Reply) {
				time.Sleep(r.After)
				b.Send(chatID, r)
			}(r)
			continue
		}
		b.Send(chatID, r)
	}
}

// Send delivers one reply. It is also the scheduler's send function.
// Delivery failures are logged, never propagated.
func (b *Bot) Send(chatID int64, r dialog.Reply) {
	msg := tgbotapi.NewMessage(chatID, r.Text)
	if len(r.Keyboard) > 0 {
		msg.ReplyMarkup = toMarkup(r.Keyboard)
	} else if r.RemoveKeyboard {
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	}
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warnw("sending message", "chat", chatID, "error", err)
	}
}

func toMarkup(kb dialog.Keyboard) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, buttons)
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = true
	return markup
}
