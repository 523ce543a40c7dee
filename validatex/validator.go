package validatex

import (
	"context"
	"net/url"
)

// Request carries everything the engine needs from one incoming HTTP request.
// The transport adapter extracts these; the engine itself never touches the
// framework's request type.
type Request struct {
	RouteName   string
	Method      string
	URLParams   map[string]string
	QueryParams url.Values
	Body        []byte
}

// Validator runs the configured validation rules against incoming requests.
// It is stateless across requests and safe for concurrent use; each call
// performs exactly one read against the rule source.
type Validator struct {
	rules RuleSource
}

// New creates a Validator resolving rules through the given source.
func New(rules RuleSource) *Validator {
	return &Validator{rules: rules}
}

// ValidateRequest resolves the active rule for the request's route and method
// and applies it. When no rule is configured the result is empty and the
// request should proceed.
//
// A non-nil error is an internal fault (rule lookup failure, unusable rule
// configuration) and should surface as a server error, never as a validation
// response.
func (v *Validator) ValidateRequest(ctx context.Context, req Request) (*Result, error) {
	rule, err := v.rules.Active(ctx, req.RouteName, req.Method)
	if err != nil {
		return nil, err
	}

	var res Result
	if rule == nil {
		return &res, nil
	}

	if len(rule.QueryParams) > 0 {
		res.QueryParams, err = ValidateQueryParams(rule.QueryParams, req.QueryParams)
		if err != nil {
			return nil, err
		}
	}

	if len(rule.URLParams) > 0 {
		res.URLParams, err = ValidateURLParams(rule.URLParams, req.URLParams)
		if err != nil {
			return nil, err
		}
	}

	if len(rule.BodySchema) > 0 {
		res.RequestBody, err = ValidateBody(req.Body, rule.BodySchema)
		if err != nil {
			return nil, err
		}
	}

	return &res, nil
}
