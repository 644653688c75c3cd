// Package content holds the static catalog: labels, prompts, tips, quotes,
// nudges, and reward texts. Pure lookup, no state.
package content

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/kuryanov322-creator/kind-energy-bot/internal/store"
)

var FocusLabels = map[store.Focus]string{
	store.FocusSleep:       "сон и пробуждение",
	store.FocusNutrition:   "осознанное питание",
	store.FocusEnergy:      "движение и тело",
	store.FocusMindfulness: "внимание и дыхание",
}

// FocusButtons maps a category to its keyboard caption.
var FocusButtons = map[store.Focus]string{
	store.FocusSleep:       "🌙 Сон",
	store.FocusNutrition:   "🥗 Питание",
	store.FocusEnergy:      "⚡️ Энергия",
	store.FocusMindfulness: "🧘 Осознанность",
}

var Quotes = []string{
	"🌿 Ты не обязана сиять. Иногда важно просто быть.",
	"💫 Твоё «достаточно» — достаточно.",
	"☁️ Тишина внутри порой громче побед.",
	"🌸 Сохраняй мягкость — даже когда день жёсткий.",
	"🔔 Нежность к себе — тоже дисциплина.",
}

var Pauses = []string{
	"🫁 Вдохни на 4, выдохни на 6. Два раза. Тишина между — тоже забота.",
	"💧 Налей воды и сделай один осознанный глоток.",
	"👣 Почувствуй опору под стопами 10 секунд. Просто побудь тут.",
}

var Tips = map[store.Focus][]string{
	store.FocusSleep: {
		"🌙 За 30 минут до сна приглуши свет, экраны — на паузу.",
		"🌙 Дыхание лёжа: вдох 4 — выдох 6, две минуты.",
	},
	store.FocusNutrition: {
		"🥗 Стакан воды до кофе — простое «спасибо» телу.",
		"🥗 Первые пять укусов — медленно.",
	},
	store.FocusEnergy: {
		"⚡️ 2 минуты: круг плечами, расправь грудь.",
		"⚡️ Пройди 300 шагов без телефона.",
	},
	store.FocusMindfulness: {
		"🧘 Заметь 3 вещи, за которые можно сказать «спасибо».",
		"🧘 Ощути поверхность под стопами и вес тела.",
	},
}

var Nudges = []string{
	"💭 Вдохни глубже. Даже 10 секунд меняют ритм.",
	"🌿 Помни: ты не на марафоне. Можно идти медленно.",
	"💧 Иногда забота — это просто допить воду.",
}

// RewardText keys double as the milestone set for the streak engine.
var RewardText = map[int]string{
	3: "🔥 Три дня — дисциплина уже растёт.",
	5: "🌿 Пять дней внимания — тело запоминает мягкость.",
	7: "🕊 Неделя — красиво. Хочешь бонусную практику? Напиши: «бонус».",
}

var EveningPrompts = []string{
	"Что сегодня поддержало тебя?",
	"Где была одна маленькая победа?",
	"Что хочется отпустить до утра?",
}

const Welcome = "Kind Energy — твой тёплый спутник заботы о себе 💚\n\n" +
	"Ритм дня (мск): 08:00 / 14:00 / 20:30.\n" +
	"Направления: 🌙 сон · 🥗 питание · ⚡️ энергия · 🧘 осознанность.\n\n" +
	"Сначала пару вопросов, чтобы почувствовать тебя."

const CycleComplete = "🎉 3-дневный цикл завершён. Хочешь продолжить — напиши «хочу продолжить»."

func MorningText(f store.Focus) string {
	return fmt.Sprintf(
		"Сегодня не нужно быть идеальной — достаточно быть живой.\nФокус: %s\n\n💭 С чем ты просыпаешься?",
		FocusLabels[f],
	)
}

func MiddayText(f store.Focus) string {
	return fmt.Sprintf("%s\n\nЕсли попробуешь — напиши пару слов.", Pick(Tips[f]))
}

func EveningText() string {
	return Pick(EveningPrompts)
}

// Ring renders a 10-segment progress bar.
func Ring(v int) string {
	if v < 0 {
		v = 0
	}
	if v > store.MaxProgress {
		v = store.MaxProgress
	}
	return strings.Repeat("🟩", v) + strings.Repeat("⬜", store.MaxProgress-v) + fmt.Sprintf(" (%d/10)", v)
}

// Pick returns a random element of pool; empty pools yield "".
func Pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[rand.IntN(len(pool))]
}
