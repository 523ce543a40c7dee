// Package validatexfiber adapts the validation engine to Fiber middleware.
package validatexfiber

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/reqcraft/reqcraft/validatex"
)

// RouteNameResolver extracts the rule lookup key from a request. The default
// resolver uses the name assigned to the matched Fiber route.
type RouteNameResolver func(c *fiber.Ctx) string

// Option customizes the middleware.
type Option func(*middleware)

// WithRouteNameResolver overrides how the route name is derived.
func WithRouteNameResolver(resolve RouteNameResolver) Option {
	return func(m *middleware) { m.routeName = resolve }
}

type middleware struct {
	validator *validatex.Validator
	routeName RouteNameResolver
}

// New returns a handler that validates each request against its configured
// rule before passing it on. Validation failures short-circuit with a
// structured bad-request error; internal faults (rule lookup, unusable rule
// configuration) propagate to the app's error handler.
//
// Attach the handler to the routes it guards, and name them — the default
// resolver reads the matched route's name, which is only populated once
// routing has selected the route the handler belongs to:
//
//	validate := validatexfiber.New(validator)
//	app.Get("/users/:id", validate, getUser).Name("getUser")
//
// Mounted globally with app.Use the matched route is not known yet and the
// default resolver sees an empty name, so no rule is ever found. For global
// mounting derive the lookup key from the request itself with
// WithRouteNameResolver.
func New(validator *validatex.Validator, opts ...Option) fiber.Handler {
	m := &middleware{
		validator: validator,
		routeName: func(c *fiber.Ctx) string { return c.Route().Name },
	}
	for _, opt := range opts {
		opt(m)
	}

	return func(c *fiber.Ctx) error {
		req := validatex.Request{
			RouteName:   m.routeName(c),
			Method:      c.Method(),
			URLParams:   c.AllParams(),
			QueryParams: queryValues(c),
			Body:        c.Body(),
		}

		result, err := m.validator.ValidateRequest(c.UserContext(), req)
		if err != nil {
			return err
		}
		if xerr := result.Err(); xerr != nil {
			return xerr
		}
		return c.Next()
	}
}

func queryValues(c *fiber.Ctx) url.Values {
	values := make(url.Values)
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values
}
