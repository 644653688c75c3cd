// Package dialog is the conversational state machine: it maps the user's
// awaiting marker, the menu context, and incoming text to replies and record
// mutations. Every mutation is persisted through the store before the reply
// that depends on it is returned.
package dialog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kuryanov322-creator/kind-energy-bot/internal/content"
	"github.com/kuryanov322-creator/kind-energy-bot/internal/cycle"
	"github.com/kuryanov322-creator/kind-energy-bot/internal/store"
)

// menuFollowUpDelay separates the morning feedback from the return-to-menu
// message.
const menuFollowUpDelay = 6 * time.Second

// Reply is one outgoing message. After > 0 asks the transport to delay it.
type Reply struct {
	Text           string
	Keyboard       Keyboard
	RemoveKeyboard bool
	After          time.Duration
}

// Assistant produces AI-augmented reply text; implementations never fail.
type Assistant interface {
	SmallTalk(ctx context.Context, text string) string
	MorningFeedback(ctx context.Context, answer, focusLabel string, profile map[string]string) string
}

// Armer re-arms the per-user timers after a focus change.
type Armer interface {
	Arm(userID string, chatID int64)
}

type Engine struct {
	store  *store.Store
	ai     Assistant
	timers Armer
	now    func() time.Time
	log    *zap.SugaredLogger
}

func New(st *store.Store, ai Assistant, timers Armer, loc *time.Location, log *zap.SugaredLogger) *Engine {
	return &Engine{
		store:  st,
		ai:     ai,
		timers: timers,
		now:    func() time.Time { return time.Now().In(loc) },
		log:    log,
	}
}

// Start handles first contact: welcome text plus the gender keyboard.
func (e *Engine) Start(userID string, chatID int64) []Reply {
	e.store.Update(userID, func(u *store.UserRecord) { u.ChatID = chatID })
	return reply(content.Welcome, kbGender())
}

// HandleText interprets one incoming free-text message against the user's
// current state. Cases are evaluated in fixed priority order: gender
// selection, pending onboarding question, menu commands, morning capture,
// free-text fallback.
func (e *Engine) HandleText(ctx context.Context, userID string, chatID int64, text string) []Reply {
	txt := strings.TrimSpace(text)
	if txt == "" {
		return nil
	}
	u := e.store.Ensure(userID)
	cmd := lookupCommand(txt)

	if u.Awaiting == store.AwaitingNone && (cmd == cmdGenderFemale || cmd == cmdGenderMale) {
		g := store.GenderFemale
		if cmd == cmdGenderMale {
			g = store.GenderMale
		}
		e.store.Update(userID, func(r *store.UserRecord) {
			r.Gender = g
			r.Awaiting = store.AwaitingQ1
			r.ChatID = chatID
		})
		return reply("🛌 Как ты обычно спишь?", kbSleepOptions())
	}

	// While a question is pending, any input is the answer to that question.
	switch u.Awaiting {
	case store.AwaitingQ1:
		e.store.Update(userID, func(r *store.UserRecord) {
			r.Profile[store.ProfileSleep] = txt
			r.Awaiting = store.AwaitingQ2
		})
		return reply("⚡️ Как с энергией днём?", kbEnergyOptions())
	case store.AwaitingQ2:
		e.store.Update(userID, func(r *store.UserRecord) {
			r.Profile[store.ProfileEnergy] = txt
			r.Awaiting = store.AwaitingQ3
		})
		return reply("🍀 Как сейчас относишься к себе?", kbAttitudeOptions())
	case store.AwaitingQ3:
		done := e.store.Update(userID, func(r *store.UserRecord) {
			r.Profile[store.ProfileAttitude] = txt
			r.Awaiting = store.AwaitingNone
		})
		rec := autoRecommend(done.Profile)
		return reply(fmt.Sprintf(
			"Мой взгляд: начать лучше с «%s». Нажми %s, или выбери свой вариант ниже.",
			content.FocusLabels[rec], content.FocusButtons[rec],
		), kbFocusSelect())
	}

	switch cmd {
	case cmdMenuHome:
		return reply("Главное меню:", MainKeyboard())
	case cmdMenuPractices:
		return reply("Практики:", kbPractices())
	case cmdMenuManage:
		return reply("Управление:", kbManage())
	case cmdMenuFocus:
		return reply("Выбери направление:", kbFocusSelect())

	case cmdFocusSleep, cmdFocusNutrition, cmdFocusEnergy, cmdFocusMindfulness:
		f := focusFor(cmd)
		e.store.Update(userID, func(r *store.UserRecord) {
			r.Focus = f
			r.Day = 1
			r.Completed = false
			r.ChatID = chatID
		})
		e.timers.Arm(userID, chatID)
		return reply("🕰 Стартуем завтра в 08:00 (мск). Днём — короткая практика, вечером — тихий выдох.", MainKeyboard())

	case cmdToday:
		return e.todayView(u)
	case cmdProgress:
		return e.progressView(u)

	case cmdPause:
		return reply(content.Pick(content.Pauses), kbPractices())
	case cmdQuote:
		return reply(content.Pick(content.Quotes), kbPractices())
	case cmdDailyTip:
		if u.Focus == store.FocusNone {
			return reply("Сначала выбери фокус 🌿", kbFocusSelect())
		}
		return reply("🧭 Рекомендация: "+content.Pick(content.Tips[u.Focus]), kbPractices())

	case cmdChangeFocus:
		// Progress and streak survive a focus change.
		e.store.Update(userID, func(r *store.UserRecord) {
			r.Focus = store.FocusNone
			r.Completed = false
		})
		return reply("Выбери новое направление:", kbFocusSelect())
	case cmdRestart:
		e.store.Reset(userID)
		e.store.Update(userID, func(r *store.UserRecord) { r.ChatID = chatID })
		return reply("Начнём с нуля. Скажи немного о себе:", kbGender())
	case cmdToggleNudges:
		toggled := e.store.Update(userID, func(r *store.UserRecord) {
			r.NudgesEnabled = !r.NudgesEnabled
		})
		state := "включены 🔔"
		if !toggled.NudgesEnabled {
			state = "выключены 🔕"
		}
		return reply(fmt.Sprintf("Нотификации %s.", state), kbManage())
	}

	if u.Awaiting == store.AwaitingMorning {
		now := e.now()
		captured := e.store.Update(userID, func(r *store.UserRecord) {
			r.LastMorningAnswer = txt
			r.Awaiting = store.AwaitingNone
			cycle.TouchStreakOnce(r, now)
		})
		fb := e.ai.MorningFeedback(ctx, txt, content.FocusLabels[captured.Focus], captured.Profile)
		return []Reply{
			{Text: fb},
			{Text: "Если хочешь — загляни в меню 🌿", Keyboard: MainKeyboard(), After: menuFollowUpDelay},
		}
	}

	if u.Focus != store.FocusNone {
		return []Reply{{Text: e.ai.SmallTalk(ctx, txt), Keyboard: MainKeyboard()}}
	}
	return reply("Выбери пункт меню или нажми «🎯 Фокус».", MainKeyboard())
}

func (e *Engine) todayView(u store.UserRecord) []Reply {
	if u.Focus == store.FocusNone {
		return reply("🌿 Сначала выбери фокус:", kbFocusSelect())
	}
	now := e.now()
	minutes := now.Hour()*60 + now.Minute()
	var slot string
	switch {
	case minutes < 8*60:
		slot = "⏳ Утро ещё не началось (08:00). Возвращаю в меню."
	case minutes < 14*60:
		slot = "✅ Утро прошло. Встретимся днём (14:00)."
	case minutes < 20*60+30:
		slot = "✅ День прошёл. Встретимся вечером (20:30)."
	default:
		slot = "🌙 День завершается. Завтра начнём заново в 08:00."
	}
	return reply(fmt.Sprintf("🪷 Сегодня — день %d · фокус: %s\n%s", u.Day, content.FocusLabels[u.Focus], slot), MainKeyboard())
}

func (e *Engine) progressView(u store.UserRecord) []Reply {
	started := false
	for _, v := range u.Progress {
		if v > 0 {
			started = true
			break
		}
	}
	if !started {
		return reply("🌿 Пока всё только начинается — выбери фокус:", kbFocusSelect())
	}
	msg := fmt.Sprintf(
		"💚 Прогресс Kind Energy\n\n🌙 Сон — %s\n🥗 Питание — %s\n⚡️ Энергия — %s\n🧘 Осознанность — %s\n\n🔥 Streak: %d дней подряд",
		content.Ring(u.Progress[store.FocusSleep]),
		content.Ring(u.Progress[store.FocusNutrition]),
		content.Ring(u.Progress[store.FocusEnergy]),
		content.Ring(u.Progress[store.FocusMindfulness]),
		u.StreakCount,
	)
	return reply(msg, MainKeyboard())
}

// autoRecommend picks a starting focus from the onboarding answers.
// Case-insensitive substring match, first hit wins, nutrition by default.
func autoRecommend(p map[string]string) store.Focus {
	s := strings.ToLower(p[store.ProfileSleep])
	en := strings.ToLower(p[store.ProfileEnergy])
	a := strings.ToLower(p[store.ProfileAttitude])
	switch {
	case strings.Contains(s, "сложно") || strings.Contains(s, "просыпаюсь"):
		return store.FocusSleep
	case strings.Contains(en, "устал"):
		return store.FocusEnergy
	case strings.Contains(a, "редко"):
		return store.FocusMindfulness
	}
	return store.FocusNutrition
}

func reply(text string, kb Keyboard) []Reply {
	return []Reply{{Text: text, Keyboard: kb}}
}
