package validatex

import "context"

// RuleSource resolves the active validation rule for a route and method.
//
// A (nil, nil) return means no rule is configured for the pair, in which case
// validation is skipped for the request. Implementations are injected into a
// Validator rather than reached through package state, so each deployment
// decides where rules live.
type RuleSource interface {
	Active(ctx context.Context, routeName, method string) (*RouteRule, error)
}

// RuleSourceFunc adapts a plain function to the RuleSource interface.
type RuleSourceFunc func(ctx context.Context, routeName, method string) (*RouteRule, error)

// Active implements RuleSource.
func (f RuleSourceFunc) Active(ctx context.Context, routeName, method string) (*RouteRule, error) {
	return f(ctx, routeName, method)
}
