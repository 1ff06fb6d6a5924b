package llm

import "alcyxob/fitness-planner/internal/domain"

// PlanSchemaName names the structured-output schema sent to providers.
const PlanSchemaName = "Plan"

// PlanJSONSchema returns the strict JSON Schema of a Plan: every key
// required, no additional properties, exactly three exercises.
func PlanJSONSchema() map[string]interface{} {
	str := map[string]interface{}{"type": "string"}
	integer := map[string]interface{}{"type": "integer"}

	exercise := map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]interface{}{
			"id":     str,
			"title":  str,
			"scheme": str,
			"cap":    str,
			"notes":  str,
		},
		"required": domain.ExerciseKeys,
	}

	return map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]interface{}{
			"id":                str,
			"name":              str,
			"tier":              map[string]interface{}{"type": "string", "enum": []string{string(domain.TierEmerald), string(domain.TierFree)}},
			"level":             integer,
			"xp":                integer,
			"xpToNext":          integer,
			"weeklyWorkouts":    integer,
			"completedThisWeek": integer,
			"streakDays":        integer,
			"nextWorkoutETA":    str,
			"today": map[string]interface{}{
				"type":     "array",
				"items":    exercise,
				"minItems": len(domain.ExerciseSlots),
				"maxItems": len(domain.ExerciseSlots),
			},
		},
		"required": domain.PlanKeys,
	}
}
