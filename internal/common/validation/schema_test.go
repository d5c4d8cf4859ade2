package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() JSONSchema {
	return JSONSchema{
		Type:     "object",
		Required: []string{"label", "amount"},
		Properties: map[string]Property{
			"label":  {Type: "string"},
			"amount": {Type: "numeric"},
			"strict": {Type: "number"},
		},
		AdditionalProperties: true,
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected float64
		wantErr  bool
	}{
		{"json number", json.Number("150"), 150, false},
		{"json fraction", json.Number("2.5"), 2.5, false},
		{"float64", 6.0, 6, false},
		{"int", 2024, 2024, false},
		{"numeric string", "150", 150, false},
		{"padded numeric string", "  2.75 ", 2.75, false},
		{"negative string", "-3", -3, false},
		{"word", "two", 0, true},
		{"empty string", "", 0, true},
		{"bool", true, 0, true},
		{"null", nil, 0, true},
		{"object", map[string]interface{}{"v": 1}, 0, true},
		{"array", []interface{}{1.0}, 0, true},
		{"nan string", "NaN", 0, true},
		{"inf string", "inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToFloat(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidateInput(t *testing.T) {
	t.Run("valid with extra field", func(t *testing.T) {
		res := ValidateInput(map[string]interface{}{
			"label":  "Wedding",
			"amount": "12",
			"note":   "ignored",
		}, testSchema())

		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
	})

	t.Run("missing and mistyped fields", func(t *testing.T) {
		res := ValidateInput(map[string]interface{}{
			"amount": false,
		}, testSchema())

		assert.False(t, res.Valid)
		assert.True(t, res.HasErrors("label"))
		assert.True(t, res.HasErrors("amount"))

		problems := res.Problems()
		assert.Equal(t, "required field missing", problems["label"])
		assert.Equal(t, "expected number, got boolean", problems["amount"])
	})

	t.Run("number type rejects strings", func(t *testing.T) {
		res := ValidateInput(map[string]interface{}{
			"label":  "x",
			"amount": 1.0,
			"strict": "1",
		}, testSchema())

		assert.False(t, res.Valid)
		assert.Equal(t, []string{"strict: expected number, got string"}, res.GetErrorMessages())
	})

	t.Run("negative numbers pass type checks", func(t *testing.T) {
		res := ValidateInput(map[string]interface{}{
			"label":  "x",
			"amount": json.Number("-1"),
		}, testSchema())

		assert.True(t, res.Valid)
	})

	t.Run("closed schema rejects extras", func(t *testing.T) {
		schema := testSchema()
		schema.AdditionalProperties = false
		res := ValidateInput(map[string]interface{}{
			"label":  "x",
			"amount": 1.0,
			"other":  1.0,
		}, schema)

		require.Len(t, res.Errors, 1)
		assert.Equal(t, "EXTRA_FIELD", res.Errors[0].Code)
	})
}
