package rulexmongo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqcraft/reqcraft/storex/providers/storexmemory"
	"github.com/reqcraft/reqcraft/validatex"
	"github.com/reqcraft/reqcraft/validatex/providers/rulexmongo"
)

func TestSourceActive(t *testing.T) {
	ctx := context.Background()
	repo := storexmemory.NewRepository[validatex.RouteRule]()

	active, err := repo.InsertOne(ctx, validatex.RouteRule{
		RouteName: "getUser",
		Method:    "GET",
		IsActive:  true,
		URLParams: []validatex.ParamRule{
			{Name: "id", DataType: validatex.DataTypeObjectID, IsRequired: true},
		},
	})
	require.NoError(t, err)

	_, err = repo.InsertOne(ctx, validatex.RouteRule{
		RouteName: "getUser",
		Method:    "POST",
		IsActive:  false,
	})
	require.NoError(t, err)

	source := rulexmongo.New(repo)

	t.Run("returns the active rule for the pair", func(t *testing.T) {
		rule, err := source.Active(ctx, "getUser", "GET")
		require.NoError(t, err)
		require.NotNil(t, rule)
		assert.Equal(t, active.ID, rule.ID)
		assert.Len(t, rule.URLParams, 1)
	})

	t.Run("inactive rules are invisible", func(t *testing.T) {
		rule, err := source.Active(ctx, "getUser", "POST")
		require.NoError(t, err)
		assert.Nil(t, rule)
	})

	t.Run("unknown route means no rule, not an error", func(t *testing.T) {
		rule, err := source.Active(ctx, "deleteUser", "DELETE")
		require.NoError(t, err)
		assert.Nil(t, rule)
	})
}
