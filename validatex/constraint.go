package validatex

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// evalConstraint applies the rule's constraint, if any, to a coerced value.
// Value failures come back as field errors; malformed or unknown constraint
// configuration comes back as an error.
func evalConstraint(rule ParamRule, value any) ([]FieldError, error) {
	c := rule.Constraint
	if c == nil {
		return nil, nil
	}

	switch c.Kind {
	case ConstraintBetween:
		bounds, ok := asMap(c.Value)
		if !ok {
			return nil, invalidConstraint(rule, "BETWEEN payload must be a {min,max} document")
		}
		min, max := bounds["min"], bounds["max"]
		lo, okLo := compareValues(rule, value, min)
		hi, okHi := compareValues(rule, value, max)
		if !okLo || !okHi {
			return nil, invalidConstraint(rule, "BETWEEN bounds are not comparable with the parameter value")
		}
		if lo < 0 || hi > 0 {
			return []FieldError{{
				Message:       rule.Name + " out of range",
				ExpectedRange: &Range{Min: stringify(min), Max: stringify(max)},
			}}, nil
		}
		return nil, nil

	case ConstraintEquals:
		if !equalValues(rule, value, c.Value) {
			return []FieldError{{
				Message:       rule.Name + " incorrect value",
				ExpectedValue: c.Value,
			}}, nil
		}
		return nil, nil

	case ConstraintIn:
		items, ok := asSlice(c.Value)
		if !ok {
			return nil, invalidConstraint(rule, "IN payload must be a collection")
		}
		for _, item := range items {
			if equalValues(rule, value, item) {
				return nil, nil
			}
		}
		return []FieldError{{
			Message:        rule.Name + " incorrect value",
			ExpectedValues: items,
		}}, nil

	case ConstraintGreaterThan:
		cmp, ok := compareValues(rule, value, c.Value)
		if !ok {
			return nil, invalidConstraint(rule, "GREATER_THAN threshold is not comparable with the parameter value")
		}
		if cmp <= 0 {
			return []FieldError{{
				Message: rule.Name + " should be greater than " + stringify(c.Value),
			}}, nil
		}
		return nil, nil

	case ConstraintLessThan:
		cmp, ok := compareValues(rule, value, c.Value)
		if !ok {
			return nil, invalidConstraint(rule, "LESS_THAN threshold is not comparable with the parameter value")
		}
		if cmp >= 0 {
			return []FieldError{{
				Message: rule.Name + " should be less than " + stringify(c.Value),
			}}, nil
		}
		return nil, nil

	default:
		return nil, ValidatorErrors.New(ErrUnknownConstraint).
			WithDetail("param", rule.Name).
			WithDetail("actionType", string(c.Kind))
	}
}

func invalidConstraint(rule ParamRule, reason string) error {
	return ValidatorErrors.NewWithMessage(ErrInvalidConstraint, reason).
		WithDetail("param", rule.Name)
}

// compareValues orders a coerced parameter value against a constraint payload
// value. The second return is false when the two are not comparable.
func compareValues(rule ParamRule, value, against any) (int, bool) {
	switch v := value.(type) {
	case int64:
		n, ok := asFloat(against)
		if !ok {
			return 0, false
		}
		return compareFloats(float64(v), n), true
	case float64:
		n, ok := asFloat(against)
		if !ok {
			return 0, false
		}
		return compareFloats(v, n), true
	case string:
		s, ok := against.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(v, s), true
	case time.Time:
		t, ok := asTime(rule.Format, against)
		if !ok {
			return 0, false
		}
		switch {
		case v.Before(t):
			return -1, true
		case v.After(t):
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

// equalValues reports whether a coerced value equals a constraint payload
// value. Incomparable values are simply unequal.
func equalValues(rule ParamRule, value, against any) bool {
	if cmp, ok := compareValues(rule, value, against); ok {
		return cmp == 0
	}
	return reflect.DeepEqual(value, against)
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// asMap unwraps the map shapes a payload can arrive in, depending on whether
// the rule was decoded from BSON or JSON.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case bson.M:
		return m, true
	case bson.D:
		out := make(map[string]any, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out, true
	}
	return nil, false
}

// asSlice unwraps the collection shapes an IN payload can arrive in.
func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case primitive.A:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out, true
	}
	return nil, false
}

func asTime(format string, v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	case string:
		if format == "" {
			return time.Time{}, false
		}
		parsed, err := time.Parse(format, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}

func stringify(v any) string {
	return fmt.Sprintf("%v", v)
}
