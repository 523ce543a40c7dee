package validatex

import "net/url"

// ValidateURLParams validates URL path captures against an ordered list of
// parameter rules. Errors come back in rule order.
func ValidateURLParams(rules []ParamRule, params map[string]string) ([]FieldError, error) {
	return validateParams(rules, func(name string) string {
		return params[name]
	})
}

// ValidateQueryParams validates query parameters against an ordered list of
// parameter rules. When a key carries several values only the first one is
// validated.
func ValidateQueryParams(rules []ParamRule, query url.Values) ([]FieldError, error) {
	return validateParams(rules, func(name string) string {
		return query.Get(name)
	})
}

func validateParams(rules []ParamRule, get func(name string) string) ([]FieldError, error) {
	var errs []FieldError
	for _, rule := range rules {
		value := get(rule.Name)

		// An absent key and an empty value are both "not supplied".
		if value == "" {
			if rule.IsRequired {
				errs = append(errs, FieldError{
					Message: rule.Name + " param is manadatory",
					Type:    rule.DataType,
				})
			}
			continue
		}

		fieldErrs, err := CheckValue(rule, value)
		if err != nil {
			return nil, err
		}
		errs = append(errs, fieldErrs...)
	}
	return errs, nil
}
