package service

import (
	"alcyxob/fitness-planner/internal/domain"
	"context"
	"strings"

	"github.com/google/uuid"
)

// LocalGeneratePlan builds a plan from the rule table with no external
// dependencies. It is total: every well-formed Answers yields a valid Plan.
func LocalGeneratePlan(a domain.Answers) domain.Plan {
	scheme := domain.SchemeFor(a.Experience)
	capStr := domain.CapFor(a.Session)
	cue := domain.CueFor(a.Goal)

	today := make([]domain.Exercise, 0, len(domain.ExerciseSlots))
	for _, slot := range domain.ExerciseSlots {
		today = append(today, domain.Exercise{
			ID:     slot.ID,
			Title:  slot.TitleFor(a.Goal),
			Scheme: scheme,
			Cap:    capStr,
			Notes:  cue,
		})
	}

	return domain.Plan{
		ID:                NewPlanID(),
		Name:              domain.PlanNameFor(a.Goal),
		Tier:              domain.TierFor(a.Days, a.Equipment),
		Level:             domain.LevelFor(a.Experience),
		XP:                domain.InitialXP,
		XPToNext:          domain.InitialXPToNext,
		WeeklyWorkouts:    domain.WeeklyWorkoutsFor(a.Days),
		CompletedThisWeek: domain.InitialCompletedThisWeek,
		StreakDays:        domain.InitialStreakDays,
		NextWorkoutETA:    domain.InitialNextWorkoutETA,
		Today:             today,
	}
}

// NewPlanID returns a short random plan id such as "plan-3f9a0c41b2de".
func NewPlanID() string {
	return "plan-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// LocalSynthesizer adapts LocalGeneratePlan to the llm.Synthesizer interface.
// The plan service runs it on the fallback path.
type LocalSynthesizer struct{}

// Synthesize never fails.
func (LocalSynthesizer) Synthesize(_ context.Context, a domain.Answers) (*domain.Plan, error) {
	plan := LocalGeneratePlan(a)
	return &plan, nil
}
