package validatex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqcraft/reqcraft/errx"
	"github.com/reqcraft/reqcraft/validatex"
)

func TestCheckValueTypes(t *testing.T) {
	tests := []struct {
		name    string
		rule    validatex.ParamRule
		raw     string
		wantMsg string
	}{
		{
			name: "plain string passes",
			rule: validatex.ParamRule{Name: "nickname", DataType: validatex.DataTypeString},
			raw:  "anything at all",
		},
		{
			name: "string matching regex passes",
			rule: validatex.ParamRule{Name: "code", DataType: validatex.DataTypeString, Regex: `[a-z]{3}-\d{2}`},
			raw:  "abc-42",
		},
		{
			name:    "regex must match the whole value",
			rule:    validatex.ParamRule{Name: "code", DataType: validatex.DataTypeString, Regex: `[a-z]{3}`},
			raw:     "abcdef",
			wantMsg: "code must follow regex [a-z]{3}",
		},
		{
			name: "integer digits pass",
			rule: validatex.ParamRule{Name: "age", DataType: validatex.DataTypeInteger},
			raw:  "42",
		},
		{
			name:    "negative numbers are not integers",
			rule:    validatex.ParamRule{Name: "age", DataType: validatex.DataTypeInteger},
			raw:     "-1",
			wantMsg: "age must be of integer type",
		},
		{
			name:    "decimals are not integers",
			rule:    validatex.ParamRule{Name: "age", DataType: validatex.DataTypeInteger},
			raw:     "4.2",
			wantMsg: "age must be of integer type",
		},
		{
			name: "float passes",
			rule: validatex.ParamRule{Name: "price", DataType: validatex.DataTypeFloat},
			raw:  "3.14",
		},
		{
			name:    "integer literal is not a float",
			rule:    validatex.ParamRule{Name: "price", DataType: validatex.DataTypeFloat},
			raw:     "3",
			wantMsg: "price must be of float type",
		},
		{
			name:    "text is not a float",
			rule:    validatex.ParamRule{Name: "price", DataType: validatex.DataTypeFloat},
			raw:     "abc",
			wantMsg: "price must be of float type",
		},
		{
			name: "24-hex object id passes",
			rule: validatex.ParamRule{Name: "id", DataType: validatex.DataTypeObjectID},
			raw:  "64b1f0a2c3d4e5f601234567",
		},
		{
			name:    "short hex is not an object id",
			rule:    validatex.ParamRule{Name: "id", DataType: validatex.DataTypeObjectID},
			raw:     "xyz",
			wantMsg: "id must be of type ObjectId",
		},
		{
			name: "date matching format passes",
			rule: validatex.ParamRule{Name: "since", DataType: validatex.DataTypeDate, Format: "2006-01-02"},
			raw:  "2024-06-15",
		},
		{
			name:    "date not matching format fails",
			rule:    validatex.ParamRule{Name: "since", DataType: validatex.DataTypeDate, Format: "2006-01-02"},
			raw:     "15/06/2024",
			wantMsg: "since must be of date type with format 2006-01-02",
		},
		{
			name:    "unknown data type fails the value",
			rule:    validatex.ParamRule{Name: "blob", DataType: "BINARY"},
			raw:     "whatever",
			wantMsg: "blob has unknown data type: BINARY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := validatex.CheckValue(tt.rule, tt.raw)
			require.NoError(t, err)
			if tt.wantMsg == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantMsg, errs[0].Message)
		})
	}
}

func TestCheckValueConfigFaults(t *testing.T) {
	t.Run("broken regex is a config error, not a field error", func(t *testing.T) {
		rule := validatex.ParamRule{Name: "code", DataType: validatex.DataTypeString, Regex: `([a-z`}
		errs, err := validatex.CheckValue(rule, "abc")
		require.Error(t, err)
		assert.Nil(t, errs)
		assert.True(t, errx.IsCode(err, validatex.ErrInvalidRegex))
	})

	t.Run("date rule without format is a config error", func(t *testing.T) {
		rule := validatex.ParamRule{Name: "since", DataType: validatex.DataTypeDate}
		_, err := validatex.CheckValue(rule, "2024-06-15")
		require.Error(t, err)
		assert.True(t, errx.IsCode(err, validatex.ErrInvalidFormat))
	})
}

func TestCheckValueSkipsConstraintOnTypeMismatch(t *testing.T) {
	rule := validatex.ParamRule{
		Name:     "age",
		DataType: validatex.DataTypeInteger,
		Constraint: &validatex.Constraint{
			Kind:  validatex.ConstraintGreaterThan,
			Value: 18,
		},
	}
	errs, err := validatex.CheckValue(rule, "not-a-number")
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "age must be of integer type", errs[0].Message)
}
