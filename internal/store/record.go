package store

type Gender string

const (
	GenderUnset  Gender = ""
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

type Focus string

const (
	FocusNone        Focus = ""
	FocusSleep       Focus = "sleep"
	FocusNutrition   Focus = "nutrition"
	FocusEnergy      Focus = "energy"
	FocusMindfulness Focus = "mindfulness"
)

// AllFocuses lists every wellness category a cycle can target.
var AllFocuses = []Focus{FocusSleep, FocusNutrition, FocusEnergy, FocusMindfulness}

// Awaiting gates how the next free-text message is interpreted.
type Awaiting string

const (
	AwaitingNone    Awaiting = ""
	AwaitingQ1      Awaiting = "q1"
	AwaitingQ2      Awaiting = "q2"
	AwaitingQ3      Awaiting = "q3"
	AwaitingMorning Awaiting = "morning"
)

// Onboarding profile keys.
const (
	ProfileSleep    = "sleep"
	ProfileEnergy   = "energy"
	ProfileAttitude = "attitude"
)

const (
	// MaxDay is the length of one focus cycle in days.
	MaxDay = 3
	// MaxProgress caps the per-category progress counter.
	MaxProgress = 10
)

// UserRecord is the durable per-user document. Dates are stored as
// YYYY-MM-DD strings in the reference time zone so the file stays
// hand-editable.
type UserRecord struct {
	Gender              Gender            `yaml:"gender"`
	Profile             map[string]string `yaml:"profile"`
	Focus               Focus             `yaml:"focus"`
	Day                 int               `yaml:"day"`
	Completed           bool              `yaml:"completed"`
	Progress            map[Focus]int     `yaml:"progress"`
	Awaiting            Awaiting          `yaml:"awaiting"`
	LastMorningAnswer   string            `yaml:"last_morning_answer"`
	StreakCount         int               `yaml:"streak_count"`
	LastInteractionDate string            `yaml:"last_interaction_date"`
	NudgesEnabled       bool              `yaml:"nudges_enabled"`
	LastEveningDate     string            `yaml:"last_evening_date"`
	LastMilestone       int               `yaml:"last_milestone"`
	ChatID              int64             `yaml:"chat_id"`
}

// NewRecord returns a record with first-contact defaults.
func NewRecord() *UserRecord {
	u := &UserRecord{
		Day:           1,
		NudgesEnabled: true,
	}
	u.normalize()
	return u
}

// normalize backfills missing keys and repairs out-of-range values so a
// hand-edited or schema-evolved document never breaks a handler.
func (u *UserRecord) normalize() {
	if u.Profile == nil {
		u.Profile = make(map[string]string)
	}
	if u.Progress == nil {
		u.Progress = make(map[Focus]int, len(AllFocuses))
	}
	for _, f := range AllFocuses {
		v := u.Progress[f]
		if v < 0 {
			v = 0
		}
		if v > MaxProgress {
			v = MaxProgress
		}
		u.Progress[f] = v
	}
	if u.Day < 1 {
		u.Day = 1
	}
	if u.Day > MaxDay {
		u.Day = MaxDay
	}
	if u.StreakCount < 0 {
		u.StreakCount = 0
	}
}

// clone returns an independent copy; callers outside Update never share maps
// with the stored record.
func (u *UserRecord) clone() UserRecord {
	c := *u
	c.Profile = make(map[string]string, len(u.Profile))
	for k, v := range u.Profile {
		c.Profile[k] = v
	}
	c.Progress = make(map[Focus]int, len(u.Progress))
	for k, v := range u.Progress {
		c.Progress[k] = v
	}
	return c
}
