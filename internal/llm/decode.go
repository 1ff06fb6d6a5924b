package llm

import (
	"alcyxob/fitness-planner/internal/domain"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DecodePlan parses a model reply strictly. The reply must be a single JSON
// object with exactly the Plan keys, no nulls, exactly three exercises with
// exactly the Exercise keys, and field values of the right types.
func DecodePlan(text string) (*domain.Plan, error) {
	data := []byte(strings.TrimSpace(text))
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty reply", ErrContractViolation)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil || top == nil {
		return nil, fmt.Errorf("%w: reply is not a JSON object", ErrContractViolation)
	}
	if err := exactKeys(top, domain.PlanKeys, "plan"); err != nil {
		return nil, err
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(top["today"], &items); err != nil {
		return nil, fmt.Errorf("%w: today must be an array of objects", ErrContractViolation)
	}
	for i, item := range items {
		if err := exactKeys(item, domain.ExerciseKeys, fmt.Sprintf("today[%d]", i)); err != nil {
			return nil, err
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var plan domain.Plan
	if err := dec.Decode(&plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContractViolation, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after plan", ErrContractViolation)
	}
	if err := validate.Struct(plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContractViolation, err)
	}
	return &plan, nil
}

func exactKeys(obj map[string]json.RawMessage, keys []string, what string) error {
	for _, k := range keys {
		v, ok := obj[k]
		if !ok {
			return fmt.Errorf("%w: %s is missing %q", ErrContractViolation, what, k)
		}
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return fmt.Errorf("%w: %s has null %q", ErrContractViolation, what, k)
		}
	}
	if len(obj) != len(keys) {
		return fmt.Errorf("%w: %s has unexpected properties", ErrContractViolation, what)
	}
	return nil
}
