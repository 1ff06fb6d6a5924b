// internal/domain/answers.go
package domain

// Goal is the training goal picked in the generate-plan wizard.
type Goal string

const (
	GoalUnset     Goal = ""
	GoalMuscle    Goal = "muscle"
	GoalFatLoss   Goal = "fatloss"
	GoalEndurance Goal = "endurance"
)

// Experience is the self-reported training experience.
type Experience string

const (
	ExperienceUnset        Experience = ""
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// Equipment is what the user has access to.
type Equipment string

const (
	EquipmentUnset     Equipment = ""
	EquipmentNone      Equipment = "none"
	EquipmentDumbbells Equipment = "dumbbells"
	EquipmentFullGym   Equipment = "fullgym"
)

// Bounds and defaults for the numeric and free-text answers.
const (
	MinDays        = 1
	MaxDays        = 7
	DefaultDays    = 3
	MinSession     = 20
	MaxSession     = 90
	DefaultSession = 45
	MaxFocusLength = 280
)

// Answers is the canonical preference record that drives plan generation.
// It only lives for the duration of one request.
type Answers struct {
	Goal       Goal       `bson:"goal" json:"goal" validate:"omitempty,oneof=muscle fatloss endurance"`
	Experience Experience `bson:"experience" json:"experience" validate:"omitempty,oneof=beginner intermediate advanced"`
	Days       int        `bson:"days" json:"days" validate:"min=1,max=7"`
	Equipment  Equipment  `bson:"equipment" json:"equipment" validate:"omitempty,oneof=none dumbbells fullgym"`
	Session    int        `bson:"session" json:"session" validate:"min=20,max=90"` // minutes
	Focus      string     `bson:"focus" json:"focus" validate:"max=280"`           // areas, injuries
}

// DefaultAnswers returns the record used when nothing usable was submitted.
func DefaultAnswers() Answers {
	return Answers{
		Days:    DefaultDays,
		Session: DefaultSession,
	}
}

// ClampDays forces a day count into [MinDays, MaxDays].
func ClampDays(days int) int {
	return clamp(days, MinDays, MaxDays)
}

// ClampSession forces a session length into [MinSession, MaxSession].
func ClampSession(minutes int) int {
	return clamp(minutes, MinSession, MaxSession)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
