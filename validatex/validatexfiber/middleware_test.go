package validatexfiber_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reqcraft/reqcraft/errx/errxfiber"
	"github.com/reqcraft/reqcraft/validatex"
	"github.com/reqcraft/reqcraft/validatex/validatexfiber"
)

func newApp(t *testing.T, source validatex.RuleSource) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: errxfiber.ErrorHandler(zap.NewNop()),
	})
	validate := validatexfiber.New(validatex.New(source))
	app.Get("/users/:id", validate, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": c.Params("id")})
	}).Name("getUser")
	return app
}

func getUserRule() validatex.RuleSource {
	return validatex.RuleSourceFunc(func(ctx context.Context, routeName, method string) (*validatex.RouteRule, error) {
		if routeName != "getUser" || method != "GET" {
			return nil, nil
		}
		return &validatex.RouteRule{
			RouteName: "getUser",
			Method:    "GET",
			IsActive:  true,
			URLParams: []validatex.ParamRule{
				{Name: "id", DataType: validatex.DataTypeObjectID, IsRequired: true},
			},
		}, nil
	})
}

func decodeBody(t *testing.T, res *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestMiddlewarePassesValidRequest(t *testing.T) {
	app := newApp(t, getUserRule())

	req := httptest.NewRequest(http.MethodGet, "/users/64b1f0a2c3d4e5f601234567", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestMiddlewareRejectsInvalidParam(t *testing.T) {
	app := newApp(t, getUserRule())

	req := httptest.NewRequest(http.MethodGet, "/users/not-an-id", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	body := decodeBody(t, res)
	assert.Equal(t, float64(http.StatusBadRequest), body["statusCode"])

	envelope, ok := body["error"].(map[string]any)
	require.True(t, ok)
	buckets, ok := envelope["errors"].(map[string]any)
	require.True(t, ok)
	urlParams, ok := buckets["urlParams"].([]any)
	require.True(t, ok)
	require.Len(t, urlParams, 1)
	first, ok := urlParams[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "id must be of type ObjectId", first["message"])
}

func TestMiddlewareResolvesNamedRoute(t *testing.T) {
	var seen []string
	source := validatex.RuleSourceFunc(func(ctx context.Context, routeName, method string) (*validatex.RouteRule, error) {
		seen = append(seen, routeName)
		return nil, nil
	})
	app := newApp(t, source)

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/42", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"getUser"}, seen)
}

func TestMiddlewareGlobalMountWithResolver(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: errxfiber.ErrorHandler(zap.NewNop()),
	})
	app.Use(validatexfiber.New(
		validatex.New(getUserRule()),
		validatexfiber.WithRouteNameResolver(func(c *fiber.Ctx) string {
			return "getUser"
		}),
	))
	app.Get("/users/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/not-an-id", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestMiddlewareSkipsUnconfiguredRoute(t *testing.T) {
	none := validatex.RuleSourceFunc(func(ctx context.Context, routeName, method string) (*validatex.RouteRule, error) {
		return nil, nil
	})
	app := newApp(t, none)

	req := httptest.NewRequest(http.MethodGet, "/users/anything-goes", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestMiddlewareHidesRuleSourceFailures(t *testing.T) {
	broken := validatex.RuleSourceFunc(func(ctx context.Context, routeName, method string) (*validatex.RouteRule, error) {
		return nil, context.DeadlineExceeded
	})
	app := newApp(t, broken)

	req := httptest.NewRequest(http.MethodGet, "/users/64b1f0a2c3d4e5f601234567", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	body := decodeBody(t, res)
	envelope, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, envelope["message"], "deadline")
}
