// Package validatex implements a declarative, rule-driven request validation
// engine.
//
// Validation requirements are configuration, not code: a RouteRule document
// names a route and method, lists parameter rules for URL captures and query
// parameters, and optionally carries a JSON schema for the request body. The
// engine resolves the active rule per request through an injected RuleSource,
// coerces each raw parameter to its declared data type, evaluates the rule's
// constraint on the coerced value, and aggregates every failure into the
// urlParams / queryParams / requestBody buckets of a Result.
//
//	source := rulexmongo.NewFromDatabase(db)
//	validator := validatex.New(source)
//
//	result, err := validator.ValidateRequest(ctx, validatex.Request{
//		RouteName:   "getUser",
//		Method:      "GET",
//		URLParams:   map[string]string{"id": "64b1f0a2c3d4e5f601234567"},
//		QueryParams: url.Values{},
//	})
//	if err != nil {
//		return err // internal fault, not a validation failure
//	}
//	if xerr := result.Err(); xerr != nil {
//		return xerr // renders as a 400 envelope at the boundary
//	}
//
// Supported data types are STRING (with optional full-match regex), INTEGER
// (digits only), FLOAT (digits '.' digits), OBJECT_ID (24-hex identifiers)
// and DATE (Go reference layout in the rule's format field). Constraints are
// BETWEEN, EQUALS, IN, GREATER_THAN and LESS_THAN, evaluated only after the
// value coerced successfully.
//
// The Fiber middleware adapter lives in validatexfiber; the MongoDB rule
// source lives in providers/rulexmongo.
package validatex
