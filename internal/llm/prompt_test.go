package llm

import (
	"alcyxob/fitness-planner/internal/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUserPrompt(t *testing.T) {
	prompt, err := BuildUserPrompt(domain.Answers{
		Goal:       domain.GoalFatLoss,
		Experience: domain.ExperienceBeginner,
		Days:       2,
		Equipment:  domain.EquipmentNone,
		Session:    30,
		Focus:      "bad knee",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt,
		`INPUT (answers): {"goal":"fatloss","experience":"beginner","days":2,"equipment":"none","session":30,"focus":"bad knee"}`))
	assert.Contains(t, prompt, "\n\nRULES:\n1) ")
	assert.Contains(t, prompt, "10) No null/undefined. Short strings.")
	assert.False(t, strings.HasSuffix(prompt, "\n"))
}

func TestRulesRenderFromTable(t *testing.T) {
	rules := Rules()
	require.Len(t, rules, 10)

	assert.Equal(t, `tier="emerald" if days>=4 OR equipment="fullgym"; else "free".`, rules[0])
	assert.Equal(t, "name by goal: muscle→Hypertrophy, fatloss→Lean Cut, endurance→Engine, else Custom.", rules[1])
	assert.Equal(t, "level: advanced→6, intermediate→3, beginner/empty→1.", rules[2])
	assert.Equal(t, `sets: advanced→"5 x 8–10", intermediate→"4 x 10–12", else→"3 x 12–15".`, rules[3])
	assert.Equal(t, `cap by session: ≤40→"8–10 min"; 41–60→"10–12 min"; >60→"12–15 min".`, rules[4])
	assert.Contains(t, rules[5], `fatloss→"Short rests, steady pace"`)
	assert.Equal(t, "today has exactly 3 items (ids ex1..ex3) with sensible titles for the goal/equipment.", rules[6])
	assert.Equal(t, `Fixed: xp=3000, xpToNext=5000, completedThisWeek=0, streakDays=0, nextWorkoutETA="ready now".`, rules[7])
	assert.Equal(t, "weeklyWorkouts=days (or 3 if empty).", rules[8])
}

func TestPlanJSONSchema(t *testing.T) {
	schema := PlanJSONSchema()
	assert.Equal(t, false, schema["additionalProperties"])
	assert.Equal(t, domain.PlanKeys, schema["required"])

	props := schema["properties"].(map[string]interface{})
	assert.Len(t, props, len(domain.PlanKeys))
	today := props["today"].(map[string]interface{})
	assert.Equal(t, 3, today["minItems"])
	assert.Equal(t, 3, today["maxItems"])
}
