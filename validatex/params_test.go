package validatex_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqcraft/reqcraft/validatex"
)

func TestValidateURLParams(t *testing.T) {
	rules := []validatex.ParamRule{
		{Name: "id", DataType: validatex.DataTypeObjectID, IsRequired: true},
		{Name: "version", DataType: validatex.DataTypeInteger},
	}

	t.Run("valid params pass", func(t *testing.T) {
		errs, err := validatex.ValidateURLParams(rules, map[string]string{
			"id":      "64b1f0a2c3d4e5f601234567",
			"version": "3",
		})
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("missing required param", func(t *testing.T) {
		errs, err := validatex.ValidateURLParams(rules, map[string]string{})
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "id param is manadatory", errs[0].Message)
		assert.Equal(t, validatex.DataTypeObjectID, errs[0].Type)
	})

	t.Run("empty value counts as missing", func(t *testing.T) {
		errs, err := validatex.ValidateURLParams(rules, map[string]string{"id": ""})
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "id param is manadatory", errs[0].Message)
	})

	t.Run("optional param absent is fine", func(t *testing.T) {
		errs, err := validatex.ValidateURLParams(rules, map[string]string{
			"id": "64b1f0a2c3d4e5f601234567",
		})
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("errors accumulate in rule order", func(t *testing.T) {
		errs, err := validatex.ValidateURLParams(rules, map[string]string{
			"id":      "nope",
			"version": "x",
		})
		require.NoError(t, err)
		require.Len(t, errs, 2)
		assert.Equal(t, "id must be of type ObjectId", errs[0].Message)
		assert.Equal(t, "version must be of integer type", errs[1].Message)
	})
}

func TestValidateQueryParams(t *testing.T) {
	rules := []validatex.ParamRule{
		{Name: "limit", DataType: validatex.DataTypeInteger},
	}

	t.Run("first value wins for repeated keys", func(t *testing.T) {
		query := url.Values{"limit": {"10", "not-a-number"}}
		errs, err := validatex.ValidateQueryParams(rules, query)
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("invalid first value fails", func(t *testing.T) {
		query := url.Values{"limit": {"ten"}}
		errs, err := validatex.ValidateQueryParams(rules, query)
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "limit must be of integer type", errs[0].Message)
	})
}
