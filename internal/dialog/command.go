package dialog

import (
	"github.com/kuryanov322-creator/kind-energy-bot/internal/content"
	"github.com/kuryanov322-creator/kind-energy-bot/internal/store"
)

// command is the closed set of menu tokens. Incoming text becomes a command
// only by exact match against a button caption; everything else stays free
// text for the awaiting-gated paths.
type command int

const (
	cmdNone command = iota
	cmdGenderFemale
	cmdGenderMale
	cmdMenuHome
	cmdMenuPractices
	cmdMenuManage
	cmdMenuFocus
	cmdFocusSleep
	cmdFocusNutrition
	cmdFocusEnergy
	cmdFocusMindfulness
	cmdToday
	cmdProgress
	cmdPause
	cmdQuote
	cmdDailyTip
	cmdChangeFocus
	cmdRestart
	cmdToggleNudges
)

const (
	btnGenderFemale = "👩 Женщина"
	btnGenderMale   = "👨 Мужчина"
	btnMenuHome     = "🏠 В меню"
	btnPractices    = "🌿 Практики"
	btnManage       = "⚙️ Управление"
	btnFocusMenu    = "🎯 Фокус"
	btnToday        = "🪷 Сегодня"
	btnProgress     = "💚 Прогресс"
	btnPause        = "☕ Пауза"
	btnQuote        = "💌 Цитата"
	btnDailyTip     = "🧭 Рекомендация дня"
	btnChangeFocus  = "🔁 Сменить фокус"
	btnRestart      = "🆕 Начать заново"
	btnToggleNudges = "🔔 Нотификации вкл/выкл"
)

var commands = map[string]command{
	btnGenderFemale: cmdGenderFemale,
	btnGenderMale:   cmdGenderMale,
	btnMenuHome:     cmdMenuHome,
	btnPractices:    cmdMenuPractices,
	btnManage:       cmdMenuManage,
	btnFocusMenu:    cmdMenuFocus,
	btnToday:        cmdToday,
	btnProgress:     cmdProgress,
	btnPause:        cmdPause,
	btnQuote:        cmdQuote,
	btnDailyTip:     cmdDailyTip,
	btnChangeFocus:  cmdChangeFocus,
	btnRestart:      cmdRestart,
	btnToggleNudges: cmdToggleNudges,

	content.FocusButtons[store.FocusSleep]:       cmdFocusSleep,
	content.FocusButtons[store.FocusNutrition]:   cmdFocusNutrition,
	content.FocusButtons[store.FocusEnergy]:      cmdFocusEnergy,
	content.FocusButtons[store.FocusMindfulness]: cmdFocusMindfulness,
}

func lookupCommand(text string) command {
	return commands[text]
}

func focusFor(cmd command) store.Focus {
	switch cmd {
	case cmdFocusSleep:
		return store.FocusSleep
	case cmdFocusNutrition:
		return store.FocusNutrition
	case cmdFocusEnergy:
		return store.FocusEnergy
	case cmdFocusMindfulness:
		return store.FocusMindfulness
	}
	return store.FocusNone
}
