// Package scheduler owns the four per-user timers: morning, midday, evening,
// nudge. Handlers always load the record fresh from the store and guard
// against users who have since reset or changed focus.
package scheduler

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/kuryanov322-creator/kind-energy-bot/internal/content"
	"github.com/kuryanov322-creator/kind-energy-bot/internal/cycle"
	"github.com/kuryanov322-creator/kind-energy-bot/internal/dialog"
	"github.com/kuryanov322-creator/kind-energy-bot/internal/store"
)

// Fixed times of day in the reference time zone.
const (
	morningSpec = "0 8 * * *"
	middaySpec  = "0 14 * * *"
	eveningSpec = "30 20 * * *"
	nudgeSpec   = "@every 1h"
)

// Accelerated schedule for verification; handler logic is identical.
const (
	testMorningSpec = "@every 30s"
	testMiddaySpec  = "@every 60s"
	testEveningSpec = "@every 90s"
	testNudgeSpec   = "@every 3m"
)

// Nudge window and probability.
const (
	nudgeHourFrom = 10
	nudgeHourTo   = 19
	nudgeChance   = 0.25
)

// SendFunc delivers one message to a chat. Failures are the transport's to
// log; the scheduler never retries.
type SendFunc func(chatID int64, r dialog.Reply)

type Scheduler struct {
	cron     *cron.Cron
	store    *store.Store
	send     SendFunc
	testMode bool
	// guardSameDay suppresses a second evening transition on the same
	// calendar date. Disabled in test mode so repeated firings walk the cycle.
	guardSameDay bool
	now          func() time.Time
	draw         func() float64
	log          *zap.SugaredLogger

	mu      sync.Mutex
	entries map[string][]cron.EntryID // userID -> its four entries
}

func New(st *store.Store, loc *time.Location, testMode bool, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		store:        st,
		testMode:     testMode,
		guardSameDay: !testMode,
		now:          func() time.Time { return time.Now().In(loc) },
		draw:         rand.Float64,
		log:          log,
		entries:      make(map[string][]cron.EntryID),
	}
}

// SetSend binds the transport's send function. Must be called before Start.
func (s *Scheduler) SetSend(send SendFunc) {
	s.send = send
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Infow("scheduler started", "test_mode", s.testMode)
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Arm installs the four timers for a user, cancelling any existing set first
// so repeated focus changes never leave duplicates behind.
func (s *Scheduler) Arm(userID string, chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.disarmLocked(userID)

	morning, midday, evening, nudge := morningSpec, middaySpec, eveningSpec, nudgeSpec
	if s.testMode {
		morning, midday, evening, nudge = testMorningSpec, testMiddaySpec, testEveningSpec, testNudgeSpec
	}

	jobs := []struct {
		spec string
		run  func(userID string, chatID int64)
	}{
		{morning, s.morning},
		{midday, s.midday},
		{evening, s.evening},
		{nudge, s.nudge},
	}
	for _, j := range jobs {
		run := j.run
		id, err := s.cron.AddFunc(j.spec, func() { run(userID, chatID) })
		if err != nil {
			s.log.Errorw("arming timer", "user", userID, "spec", j.spec, "error", err)
			continue
		}
		s.entries[userID] = append(s.entries[userID], id)
	}
	s.log.Infow("timers armed", "user", userID, "count", len(s.entries[userID]))
}

// Disarm cancels every timer belonging to the user.
func (s *Scheduler) Disarm(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarmLocked(userID)
}

func (s *Scheduler) disarmLocked(userID string) {
	for _, id := range s.entries[userID] {
		s.cron.Remove(id)
	}
	delete(s.entries, userID)
}

// Entries reports how many timers are installed for a user.
func (s *Scheduler) Entries(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries[userID])
}

func (s *Scheduler) morning(userID string, chatID int64) {
	u, ok := s.store.Get(userID)
	if !ok || u.Focus == store.FocusNone || u.Completed {
		return
	}
	// Persist the awaiting marker before the prompt goes out.
	u = s.store.Update(userID, func(r *store.UserRecord) {
		r.Awaiting = store.AwaitingMorning
	})
	s.deliver(chatID, dialog.Reply{
		Text:     fmt.Sprintf("🌅 День %d\n\n%s", u.Day, content.MorningText(u.Focus)),
		Keyboard: dialog.MoodKeyboard(),
	})
}

func (s *Scheduler) midday(userID string, chatID int64) {
	u, ok := s.store.Get(userID)
	if !ok || u.Focus == store.FocusNone {
		return
	}
	s.deliver(chatID, dialog.Reply{
		Text:           "☀️ Дневная практика\n" + content.MiddayText(u.Focus),
		RemoveKeyboard: true,
	})
}

func (s *Scheduler) evening(userID string, chatID int64) {
	u, ok := s.store.Get(userID)
	if !ok || u.Focus == store.FocusNone {
		return
	}
	var res cycle.Result
	s.store.Update(userID, func(r *store.UserRecord) {
		res = cycle.Evening(r, s.now(), s.guardSameDay)
	})
	if !res.Ran {
		return
	}
	s.deliver(chatID, dialog.Reply{
		Text:           "🌙 Вечер\n" + content.EveningText(),
		RemoveKeyboard: true,
	})
	if res.Milestone != 0 {
		s.deliver(chatID, dialog.Reply{Text: content.RewardText[res.Milestone]})
	}
	if res.Completed {
		s.deliver(chatID, dialog.Reply{Text: content.CycleComplete, Keyboard: dialog.MainKeyboard()})
	}
}

func (s *Scheduler) nudge(userID string, chatID int64) {
	u, ok := s.store.Get(userID)
	if !ok || u.Focus == store.FocusNone || !u.NudgesEnabled {
		return
	}
	h := s.now().Hour()
	if h < nudgeHourFrom || h > nudgeHourTo {
		return
	}
	if s.draw() >= nudgeChance {
		return
	}
	s.deliver(chatID, dialog.Reply{Text: content.Pick(content.Nudges)})
}

func (s *Scheduler) deliver(chatID int64, r dialog.Reply) {
	if s.send == nil {
		s.log.Warnw("no send function bound, dropping message", "chat", chatID)
		return
	}
	s.send(chatID, r)
}
