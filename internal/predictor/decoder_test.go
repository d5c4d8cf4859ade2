package predictor

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"price-predictor/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOrder_Valid(t *testing.T) {
	order, err := DecodeOrder(`{"event_type":"Wedding","quantity":2,"unit_price":"150","nested":{"a":[1,2]}}`)
	require.NoError(t, err)

	assert.Equal(t, "Wedding", order.Fields["event_type"])
	assert.Equal(t, json.Number("2"), order.Fields["quantity"])
	assert.Equal(t, "150", order.Fields["unit_price"])
	assert.Contains(t, order.Fields, "nested")
}

func TestDecodeOrder_SurroundingWhitespace(t *testing.T) {
	order, err := DecodeOrder("\n  {\"month\": 6}\t\n")
	require.NoError(t, err)
	assert.Equal(t, json.Number("6"), order.Fields["month"])
}

func TestDecodeOrder_EmptyObject(t *testing.T) {
	order, err := DecodeOrder(`{}`)
	require.NoError(t, err)
	assert.Empty(t, order.Fields)
}

func TestDecodeOrder_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"not json", "hello"},
		{"truncated", `{"event_type": "Wedding"`},
		{"array", `[{"event_type": "Wedding"}]`},
		{"string", `"Wedding"`},
		{"number", `42`},
		{"null", `null`},
		{"two objects", `{}{}`},
		{"trailing garbage", `{"month": 6} x`},
		{"single quotes", `{'month': 6}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := DecodeOrder(tt.raw)

			assert.Nil(t, order)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrMalformedInput))
		})
	}
}
