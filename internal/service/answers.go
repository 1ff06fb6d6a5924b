package service

import (
	"alcyxob/fitness-planner/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

// --- Error Definitions ---
var (
	ErrMalformedRequest = errors.New("request body is not valid JSON")
	ErrInvalidAnswers   = errors.New("answers validation failed")
)

var validate = validator.New()

// ParseAnswers is the strict validator. Missing fields take their defaults,
// integers are clamped to their bounds, and anything else that does not fit
// the Answers shape is rejected.
func ParseAnswers(raw []byte) (domain.Answers, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return domain.Answers{}, fmt.Errorf("%w: body must be a JSON object", ErrInvalidAnswers)
	}

	a := domain.DefaultAnswers()
	var err error
	var s string
	var n int

	if s, err = strictString(fields, "goal", string(a.Goal)); err != nil {
		return domain.Answers{}, err
	}
	a.Goal = domain.Goal(s)

	if s, err = strictString(fields, "experience", string(a.Experience)); err != nil {
		return domain.Answers{}, err
	}
	a.Experience = domain.Experience(s)

	if s, err = strictString(fields, "equipment", string(a.Equipment)); err != nil {
		return domain.Answers{}, err
	}
	a.Equipment = domain.Equipment(s)

	if a.Focus, err = strictString(fields, "focus", a.Focus); err != nil {
		return domain.Answers{}, err
	}

	if n, err = strictInt(fields, "days", a.Days); err != nil {
		return domain.Answers{}, err
	}
	a.Days = domain.ClampDays(n)

	if n, err = strictInt(fields, "session", a.Session); err != nil {
		return domain.Answers{}, err
	}
	a.Session = domain.ClampSession(n)

	if err := validate.Struct(a); err != nil {
		return domain.Answers{}, fmt.Errorf("%w: %v", ErrInvalidAnswers, err)
	}
	return a, nil
}

// LenientAnswers is the second-chance parse used on the fallback path. Each
// field is repaired on its own: unknown enum values become "unanswered",
// numbers are coerced from floats or numeric strings and clamped, and focus
// is truncated. It only fails when the body is not a JSON object.
func LenientAnswers(raw []byte) (domain.Answers, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return domain.DefaultAnswers(), fmt.Errorf("%w: body must be a JSON object", ErrInvalidAnswers)
	}

	a := domain.DefaultAnswers()
	a.Goal = domain.Goal(lenientEnum(lenientValue(fields, "goal"), goalValues))
	a.Experience = domain.Experience(lenientEnum(lenientValue(fields, "experience"), experienceValues))
	a.Equipment = domain.Equipment(lenientEnum(lenientValue(fields, "equipment"), equipmentValues))

	if n, ok := lenientInt(lenientValue(fields, "days")); ok {
		a.Days = domain.ClampDays(n)
	}
	if n, ok := lenientInt(lenientValue(fields, "session")); ok {
		a.Session = domain.ClampSession(n)
	}
	if v := lenientValue(fields, "focus"); v != nil {
		if s, err := cast.ToStringE(v); err == nil {
			a.Focus = truncateRunes(s, domain.MaxFocusLength)
		}
	}

	if err := validate.Struct(a); err != nil {
		return domain.DefaultAnswers(), fmt.Errorf("%w: %v", ErrInvalidAnswers, err)
	}
	return a, nil
}

// RecoverAnswers never fails: lenient parse, else full defaults.
func RecoverAnswers(raw []byte) domain.Answers {
	a, err := LenientAnswers(raw)
	if err != nil {
		return domain.DefaultAnswers()
	}
	return a
}

var (
	goalValues       = []string{string(domain.GoalMuscle), string(domain.GoalFatLoss), string(domain.GoalEndurance)}
	experienceValues = []string{string(domain.ExperienceBeginner), string(domain.ExperienceIntermediate), string(domain.ExperienceAdvanced)}
	equipmentValues  = []string{string(domain.EquipmentNone), string(domain.EquipmentDumbbells), string(domain.EquipmentFullGym)}
)

func strictString(fields map[string]json.RawMessage, key, def string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return def, nil
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return "", fmt.Errorf("%w: %s must be a string", ErrInvalidAnswers, key)
	}
	return *s, nil
}

func strictInt(fields map[string]json.RawMessage, key string, def int) (int, error) {
	raw, ok := fields[key]
	if !ok {
		return def, nil
	}
	var f *float64
	if err := json.Unmarshal(raw, &f); err != nil || f == nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidAnswers, key)
	}
	if *f != math.Trunc(*f) || math.IsInf(*f, 0) {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidAnswers, key)
	}
	// Clamp before converting so huge values cannot overflow int.
	v := math.Max(math.Min(*f, math.MaxInt32), math.MinInt32)
	return int(v), nil
}

// lenientValue decodes one field on its own. A value that does not decode,
// such as a number outside float64 range, counts as unset.
func lenientValue(fields map[string]json.RawMessage, key string) any {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

func lenientEnum(v any, allowed []string) string {
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	for _, a := range allowed {
		if s == a {
			return s
		}
	}
	return ""
}

func lenientInt(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	if f, ok := v.(float64); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int(math.Max(math.Min(f, math.MaxInt32), math.MinInt32)), true
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max])
}
