package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kuryanov322-creator/kind-energy-bot/internal/content"
)

const chatTimeout = 40 * time.Second

// Replies used when AI augmentation is switched off.
var disabledReplies = []string{
	"Слышу тебя. Береги себя сегодня.",
	"Иногда одно признание уже облегчает.",
}

// Replies used when the backend fails or times out. A backend failure must
// never reach the user as an error.
var fallbackReplies = []string{
	"Сделай вдох. Иногда лучшее — дать себе минуту тишины.",
	"Я рядом. Давай бережно к себе сегодня.",
}

// Assistant wraps a completion client with a bounded wait and local fallback
// pools. Its methods never fail.
type Assistant struct {
	client  Client // nil when AI is disabled
	timeout time.Duration
	log     *zap.SugaredLogger
}

func NewAssistant(client Client, log *zap.SugaredLogger) *Assistant {
	return &Assistant{client: client, timeout: chatTimeout, log: log}
}

// SmallTalk produces a short empathetic reply to a free-text message.
func (a *Assistant) SmallTalk(ctx context.Context, text string) string {
	return a.chat(ctx, []Message{
		{Role: "system", Content: "Отвечай как спокойный живой человек, коротко и тепло."},
		{Role: "user", Content: fmt.Sprintf("Пользователь пишет: «%s». Дай короткий тёплый ответ без клише.", text)},
	})
}

// MorningFeedback reacts to the morning answer, seeded with the active focus
// label and the onboarding profile.
func (a *Assistant) MorningFeedback(ctx context.Context, answer, focusLabel string, profile map[string]string) string {
	return a.chat(ctx, []Message{
		{Role: "system", Content: "Пиши как живой человек: коротко, тепло, без клише."},
		{Role: "user", Content: fmt.Sprintf(
			"Ответ: «%s». Фокус: %s. Анкета: %v. Дай 2–4 предложения мягкой обратной связи и маленькую рекомендацию.",
			answer, focusLabel, profile,
		)},
	})
}

func (a *Assistant) chat(ctx context.Context, messages []Message) string {
	if a.client == nil {
		return content.Pick(disabledReplies)
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	out, err := a.client.Chat(ctx, messages)
	if err != nil || out == "" {
		a.log.Warnw("completion backend failed, using fallback", "error", err)
		return content.Pick(fallbackReplies)
	}
	return out
}
