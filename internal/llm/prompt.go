package llm

import (
	"alcyxob/fitness-planner/internal/domain"
	"encoding/json"
	"fmt"
	"strings"
)

// SystemPrompt is sent as the system instruction to every provider.
const SystemPrompt = "You are a fitness planning assistant. Output ONLY compact JSON under 1200 characters, " +
	"matching the provided JSON schema exactly. No prose, no markdown."

// BuildUserPrompt embeds the serialized answers and the numbered rules.
func BuildUserPrompt(a domain.Answers) (string, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("failed to serialize answers: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INPUT (answers): %s\n\nRULES:\n", payload)
	for i, rule := range Rules() {
		fmt.Fprintf(&b, "%d) %s\n", i+1, rule)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// Rules renders the ten plan rules from the domain rule table.
func Rules() []string {
	return []string{
		fmt.Sprintf(`tier="%s" if days>=%d OR equipment="%s"; else "%s".`,
			domain.TierEmerald, domain.EmeraldMinDays, domain.EmeraldEquipment, domain.TierFree),
		"name by goal: " + goalNames() + ", else " + domain.DefaultPlanName + ".",
		"level: " + levels() + ".",
		"sets: " + schemes() + ".",
		"cap by session: " + caps() + ".",
		"cue: " + cues() + ".",
		fmt.Sprintf("today has exactly %d items (ids %s..%s) with sensible titles for the goal/equipment.",
			len(domain.ExerciseSlots), domain.ExerciseSlots[0].ID, domain.ExerciseSlots[len(domain.ExerciseSlots)-1].ID),
		fmt.Sprintf(`Fixed: xp=%d, xpToNext=%d, completedThisWeek=%d, streakDays=%d, nextWorkoutETA="%s".`,
			domain.InitialXP, domain.InitialXPToNext, domain.InitialCompletedThisWeek,
			domain.InitialStreakDays, domain.InitialNextWorkoutETA),
		fmt.Sprintf("weeklyWorkouts=days (or %d if empty).", domain.DefaultDays),
		"No null/undefined. Short strings.",
	}
}

func goalNames() string {
	parts := make([]string, 0, len(domain.GoalRules))
	for _, r := range domain.GoalRules {
		parts = append(parts, fmt.Sprintf("%s→%s", r.Goal, r.PlanName))
	}
	return strings.Join(parts, ", ")
}

func cues() string {
	parts := make([]string, 0, len(domain.GoalRules))
	for _, r := range domain.GoalRules {
		parts = append(parts, fmt.Sprintf(`%s→"%s"`, r.Goal, r.Cue))
	}
	return strings.Join(parts, "; ")
}

func levels() string {
	parts := make([]string, 0, len(domain.ExperienceRules)+1)
	for _, r := range domain.ExperienceRules {
		parts = append(parts, fmt.Sprintf("%s→%d", r.Experience, r.Level))
	}
	parts = append(parts, fmt.Sprintf("%s/empty→%d", domain.ExperienceBeginner, domain.DefaultLevel))
	return strings.Join(parts, ", ")
}

func schemes() string {
	parts := make([]string, 0, len(domain.ExperienceRules)+1)
	for _, r := range domain.ExperienceRules {
		parts = append(parts, fmt.Sprintf(`%s→"%s"`, r.Experience, r.Scheme))
	}
	parts = append(parts, fmt.Sprintf(`else→"%s"`, domain.DefaultScheme))
	return strings.Join(parts, ", ")
}

func caps() string {
	parts := make([]string, 0, len(domain.SessionCapRules))
	prev := 0
	for i, r := range domain.SessionCapRules {
		switch {
		case r.MaxMinutes == 0:
			parts = append(parts, fmt.Sprintf(`>%d→"%s"`, prev, r.Cap))
		case i == 0:
			parts = append(parts, fmt.Sprintf(`≤%d→"%s"`, r.MaxMinutes, r.Cap))
		default:
			parts = append(parts, fmt.Sprintf(`%d–%d→"%s"`, prev+1, r.MaxMinutes, r.Cap))
		}
		prev = r.MaxMinutes
	}
	return strings.Join(parts, "; ")
}
