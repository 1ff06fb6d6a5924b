// internal/domain/rules.go
package domain

// The tables below are the only statement of the plan rules. The local
// synthesizer evaluates them and the model prompt is rendered from them.

// Tier rule: emerald when training often or with a full gym.
const (
	EmeraldMinDays   = 4
	EmeraldEquipment = EquipmentFullGym
)

// GoalRule maps a goal to the plan name and the coaching cue.
type GoalRule struct {
	Goal     Goal
	PlanName string
	Cue      string
}

var GoalRules = []GoalRule{
	{Goal: GoalMuscle, PlanName: "Hypertrophy", Cue: "Controlled tempo, full ROM"},
	{Goal: GoalFatLoss, PlanName: "Lean Cut", Cue: "Short rests, steady pace"},
	{Goal: GoalEndurance, PlanName: "Engine", Cue: "Smooth breathing, steady cadence"},
}

const (
	DefaultPlanName = "Custom"
	DefaultCue      = "Smooth breathing, steady cadence"
)

// ExperienceRule maps experience to level and set/rep scheme.
type ExperienceRule struct {
	Experience Experience
	Level      int
	Scheme     string
}

var ExperienceRules = []ExperienceRule{
	{Experience: ExperienceAdvanced, Level: 6, Scheme: "5 x 8–10"},
	{Experience: ExperienceIntermediate, Level: 3, Scheme: "4 x 10–12"},
}

const (
	DefaultLevel  = 1
	DefaultScheme = "3 x 12–15"
)

// SessionCapRule applies to sessions up to MaxMinutes long. A zero
// MaxMinutes marks the open-ended last band.
type SessionCapRule struct {
	MaxMinutes int
	Cap        string
}

var SessionCapRules = []SessionCapRule{
	{MaxMinutes: 40, Cap: "8–10 min"},
	{MaxMinutes: 60, Cap: "10–12 min"},
	{MaxMinutes: 0, Cap: "12–15 min"},
}

// ExerciseSlot is one of the three exercises of today's workout. Title is
// used unless the goal equals SwapGoal, in which case SwapTitle is used.
type ExerciseSlot struct {
	ID        string
	Title     string
	SwapGoal  Goal
	SwapTitle string
}

var ExerciseSlots = [3]ExerciseSlot{
	{ID: "ex1", Title: "Goblet Squat", SwapGoal: GoalEndurance, SwapTitle: "Row / Bike"},
	{ID: "ex2", Title: "DB Bench Press", SwapGoal: GoalFatLoss, SwapTitle: "KB Swings"},
	{ID: "ex3", Title: "Plank", SwapGoal: GoalMuscle, SwapTitle: "Lat Pulldown"},
}

// Fixed progress fields of a freshly generated plan.
const (
	InitialXP                = 3000
	InitialXPToNext          = 5000
	InitialCompletedThisWeek = 0
	InitialStreakDays        = 0
	InitialNextWorkoutETA    = "ready now"
)

// TierFor applies the tier rule.
func TierFor(days int, equipment Equipment) Tier {
	if days >= EmeraldMinDays || equipment == EmeraldEquipment {
		return TierEmerald
	}
	return TierFree
}

// PlanNameFor returns the plan name for a goal.
func PlanNameFor(goal Goal) string {
	for _, r := range GoalRules {
		if r.Goal == goal {
			return r.PlanName
		}
	}
	return DefaultPlanName
}

// CueFor returns the coaching cue shared by all exercises.
func CueFor(goal Goal) string {
	for _, r := range GoalRules {
		if r.Goal == goal {
			return r.Cue
		}
	}
	return DefaultCue
}

// LevelFor returns the starting level for an experience.
func LevelFor(experience Experience) int {
	for _, r := range ExperienceRules {
		if r.Experience == experience {
			return r.Level
		}
	}
	return DefaultLevel
}

// SchemeFor returns the set/rep scheme for an experience.
func SchemeFor(experience Experience) string {
	for _, r := range ExperienceRules {
		if r.Experience == experience {
			return r.Scheme
		}
	}
	return DefaultScheme
}

// CapFor returns the time cap for a session length in minutes.
func CapFor(session int) string {
	for _, r := range SessionCapRules {
		if r.MaxMinutes == 0 || session <= r.MaxMinutes {
			return r.Cap
		}
	}
	return SessionCapRules[len(SessionCapRules)-1].Cap
}

// TitleFor picks the exercise title of a slot for a goal.
func (s ExerciseSlot) TitleFor(goal Goal) string {
	if goal == s.SwapGoal {
		return s.SwapTitle
	}
	return s.Title
}

// WeeklyWorkoutsFor returns the weekly workout count, defaulting when unset.
func WeeklyWorkoutsFor(days int) int {
	if days <= 0 {
		return DefaultDays
	}
	return days
}
