package dialog

import (
	"github.com/kuryanov322-creator/kind-energy-bot/internal/content"
	"github.com/kuryanov322-creator/kind-energy-bot/internal/store"
)

// Keyboard is an abstract reply-keyboard layout; the transport renders it.
type Keyboard [][]string

// MainKeyboard is the home menu. Exported for the scheduler's
// cycle-complete message.
func MainKeyboard() Keyboard {
	return Keyboard{
		{btnToday, btnProgress},
		{btnFocusMenu, btnPractices},
		{btnManage},
	}
}

// MoodKeyboard offers quick emoji answers to the morning prompt.
func MoodKeyboard() Keyboard {
	return Keyboard{{"😌", "🙂", "😣"}}
}

func kbPractices() Keyboard {
	return Keyboard{
		{btnPause, btnQuote},
		{btnDailyTip},
		{btnMenuHome},
	}
}

func kbManage() Keyboard {
	return Keyboard{
		{btnChangeFocus, btnRestart},
		{btnToggleNudges},
		{btnMenuHome},
	}
}

func kbFocusSelect() Keyboard {
	return Keyboard{
		{content.FocusButtons[store.FocusSleep], content.FocusButtons[store.FocusNutrition]},
		{content.FocusButtons[store.FocusEnergy], content.FocusButtons[store.FocusMindfulness]},
		{btnMenuHome},
	}
}

func kbGender() Keyboard {
	return Keyboard{{btnGenderFemale, btnGenderMale}}
}

func kbSleepOptions() Keyboard {
	return Keyboard{{"Сплю хорошо"}, {"Сложно заснуть"}, {"Часто просыпаюсь"}}
}

func kbEnergyOptions() Keyboard {
	return Keyboard{{"Стабильно"}, {"Иногда падает"}, {"Почти всегда усталость"}}
}

func kbAttitudeOptions() Keyboard {
	return Keyboard{{"Забочусь о себе"}, {"Мог(ла) бы внимательнее"}, {"Редко думаю об этом"}}
}
