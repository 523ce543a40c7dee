package validatex

import (
	"regexp"
	"strconv"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var floatPattern = regexp.MustCompile(`^\d+\.\d+$`)

// patternCache holds compiled, fully-anchored rule regexes.
var patternCache sync.Map // string -> *regexp.Regexp

func compiledPattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := patternCache.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, ValidatorErrors.NewWithCause(ErrInvalidRegex, err).
			WithDetail("regex", pattern)
	}
	patternCache.Store(pattern, re)
	return re, nil
}

// CheckValue validates a raw value against a single parameter rule: the value
// must coerce to the rule's data type, and only then is the rule's constraint
// evaluated against the coerced value. A type mismatch yields exactly one
// field error and skips the constraint.
//
// The returned error reports configuration faults (bad regex, missing date
// format, malformed constraint payloads), not value failures.
func CheckValue(rule ParamRule, raw string) ([]FieldError, error) {
	switch rule.DataType {
	case DataTypeString:
		return checkString(rule, raw)
	case DataTypeInteger:
		return checkInteger(rule, raw)
	case DataTypeFloat:
		return checkFloat(rule, raw)
	case DataTypeObjectID:
		return checkObjectID(rule, raw)
	case DataTypeDate:
		return checkDate(rule, raw)
	default:
		return []FieldError{{
			Message: rule.Name + " has unknown data type: " + string(rule.DataType),
		}}, nil
	}
}

func checkString(rule ParamRule, raw string) ([]FieldError, error) {
	if rule.Regex != "" {
		re, err := compiledPattern(rule.Regex)
		if err != nil {
			return nil, err
		}
		if !re.MatchString(raw) {
			return []FieldError{{
				Message: rule.Name + " must follow regex " + rule.Regex,
			}}, nil
		}
	}
	return evalConstraint(rule, raw)
}

func checkInteger(rule ParamRule, raw string) ([]FieldError, error) {
	if !digitsOnly(raw) {
		return []FieldError{{
			Message: rule.Name + " must be of integer type",
		}}, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return []FieldError{{
			Message: rule.Name + " must be of integer type",
		}}, nil
	}
	return evalConstraint(rule, value)
}

func checkFloat(rule ParamRule, raw string) ([]FieldError, error) {
	if !floatPattern.MatchString(raw) {
		return []FieldError{{
			Message: rule.Name + " must be of float type",
		}}, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return []FieldError{{
			Message: rule.Name + " must be of float type",
		}}, nil
	}
	return evalConstraint(rule, value)
}

func checkObjectID(rule ParamRule, raw string) ([]FieldError, error) {
	if _, err := primitive.ObjectIDFromHex(raw); err != nil {
		return []FieldError{{
			Message: rule.Name + " must be of type ObjectId",
		}}, nil
	}
	// ObjectIds are compared and constrained as their raw hex form.
	return evalConstraint(rule, raw)
}

func checkDate(rule ParamRule, raw string) ([]FieldError, error) {
	if rule.Format == "" {
		return nil, ValidatorErrors.New(ErrInvalidFormat).WithDetail("param", rule.Name)
	}
	value, err := time.Parse(rule.Format, raw)
	if err != nil {
		return []FieldError{{
			Message: rule.Name + " must be of date type with format " + rule.Format,
		}}, nil
	}
	return evalConstraint(rule, value)
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
