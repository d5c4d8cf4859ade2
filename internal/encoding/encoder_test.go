package encoding

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"price-predictor/internal/common/errors"
	"price-predictor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weddingOrder() *models.OrderRequest {
	return &models.OrderRequest{Fields: map[string]interface{}{
		"event_type":    "Wedding",
		"product_name":  "Red Carpet",
		"quantity":      json.Number("2"),
		"unit_price":    json.Number("150"),
		"duration_days": json.Number("1"),
		"season_period": "5-8",
		"month":         json.Number("6"),
		"year":          json.Number("2024"),
	}}
}

func withField(order *models.OrderRequest, field string, value interface{}) *models.OrderRequest {
	order.Fields[field] = value
	return order
}

func withoutField(order *models.OrderRequest, field string) *models.OrderRequest {
	delete(order.Fields, field)
	return order
}

func requireCode(t *testing.T, err error, code errors.ErrorCode) *errors.StandardError {
	t.Helper()
	require.Error(t, err)
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr), "expected StandardError, got %T", err)
	require.Equal(t, code, stdErr.Code)
	return stdErr
}

func TestEncoder_Encode_WorkedExample(t *testing.T) {
	enc := NewEncoder(DefaultVocabulary())

	vec, err := enc.Encode(weddingOrder())
	require.NoError(t, err)

	assert.Equal(t, models.FeatureVector{5, 11, 2.0, 150.0, 1.0, 1, 6.0, 2024.0}, vec)
}

func TestEncoder_Encode_IsDeterministic(t *testing.T) {
	enc := NewEncoder(DefaultVocabulary())
	order := weddingOrder()

	first, err := enc.Encode(order)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := enc.Encode(order)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEncoder_Encode_AllVocabularyLabels(t *testing.T) {
	vocab := DefaultVocabulary()
	enc := NewEncoder(vocab)

	expected := map[string]map[string]float64{
		"event_type":    {"Wedding": 5, "Corporate Event": 2, "Engagement Party": 3, "Anniversary": 0},
		"product_name":  {"Versailles Chair": 13, "Surpentine Buffet Table": 12, "Red Carpet": 11, "Navy Blue and Yellow Tent": 6},
		"season_period": {"1-4": 0, "5-8": 1, "9-12": 2},
	}
	positions := map[string]int{
		"event_type":    models.IdxEventType,
		"product_name":  models.IdxProductName,
		"season_period": models.IdxSeasonPeriod,
	}

	for field, labels := range expected {
		for label, code := range labels {
			vec, err := enc.Encode(withField(weddingOrder(), field, label))
			require.NoError(t, err, "%s=%s", field, label)
			assert.Equal(t, code, vec[positions[field]], "%s=%s", field, label)
		}
	}
}

func TestEncoder_Encode_NumericStrings(t *testing.T) {
	enc := NewEncoder(DefaultVocabulary())
	order := weddingOrder()
	order.Fields["quantity"] = "3"
	order.Fields["unit_price"] = "99.5"
	order.Fields["year"] = " 2025 "
	order.Fields["month"] = 11.0

	vec, err := enc.Encode(order)
	require.NoError(t, err)

	assert.Equal(t, 3.0, vec[models.IdxQuantity])
	assert.Equal(t, 99.5, vec[models.IdxUnitPrice])
	assert.Equal(t, 11.0, vec[models.IdxMonth])
	assert.Equal(t, 2025.0, vec[models.IdxYear])
}

func TestEncoder_Encode_UnknownCategory(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"event type", "event_type", "Birthday"},
		{"product name", "product_name", "Gazebo"},
		{"season period", "season_period", "13-16"},
		{"case sensitive", "event_type", "wedding"},
		{"no trimming", "product_name", "Red Carpet "},
	}

	enc := NewEncoder(DefaultVocabulary())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := enc.Encode(withField(weddingOrder(), tt.field, tt.value))

			stdErr := requireCode(t, err, errors.ErrCodeUnknownCategory)
			assert.Equal(t, tt.field, stdErr.Metadata["field"])
			assert.Equal(t, tt.value, stdErr.Metadata["value"])
		})
	}
}

func TestEncoder_Encode_InvalidFeatureValue(t *testing.T) {
	tests := []struct {
		name   string
		order  *models.OrderRequest
		fields []string
	}{
		{"missing quantity", withoutField(weddingOrder(), "quantity"), []string{"quantity"}},
		{"missing category", withoutField(weddingOrder(), "event_type"), []string{"event_type"}},
		{"non numeric price", withField(weddingOrder(), "unit_price", "cheap"), []string{"unit_price"}},
		{"boolean duration", withField(weddingOrder(), "duration_days", true), []string{"duration_days"}},
		{"null month", withField(weddingOrder(), "month", nil), []string{"month"}},
		{"numeric category", withField(weddingOrder(), "season_period", json.Number("1")), []string{"season_period"}},
		{
			"several missing",
			withoutField(withoutField(weddingOrder(), "year"), "unit_price"),
			[]string{"unit_price", "year"},
		},
		{"nil order", nil, models.RequiredFields},
	}

	enc := NewEncoder(DefaultVocabulary())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := enc.Encode(tt.order)

			stdErr := requireCode(t, err, errors.ErrCodeInvalidFeatureValue)
			assert.Len(t, stdErr.Metadata, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, stdErr.Metadata, f)
			}
		})
	}
}

func TestEncoder_Encode_ValidationPrecedesCategoryLookup(t *testing.T) {
	enc := NewEncoder(DefaultVocabulary())
	order := withoutField(withField(weddingOrder(), "event_type", "Birthday"), "year")

	_, err := enc.Encode(order)
	requireCode(t, err, errors.ErrCodeInvalidFeatureValue)
}

func TestEncoder_Encode_InjectedVocabulary(t *testing.T) {
	vocab := Vocabulary{
		EventType:    NewCategory(models.FieldEventType, map[string]int{"Gala": 7}),
		ProductName:  NewCategory(models.FieldProductName, map[string]int{"Stage": 1}),
		SeasonPeriod: NewCategory(models.FieldSeasonPeriod, map[string]int{"all": 0}),
	}
	enc := NewEncoder(vocab)

	order := weddingOrder()
	order.Fields["event_type"] = "Gala"
	order.Fields["product_name"] = "Stage"
	order.Fields["season_period"] = "all"

	vec, err := enc.Encode(order)
	require.NoError(t, err)
	assert.Equal(t, models.FeatureVector{7, 1, 2, 150, 1, 0, 6, 2024}, vec)

	_, err = enc.Encode(weddingOrder())
	requireCode(t, err, errors.ErrCodeUnknownCategory)
}

func TestNewCategory_CopiesInput(t *testing.T) {
	codes := map[string]int{"a": 1}
	cat := NewCategory("f", codes)
	codes["b"] = 2

	_, ok := cat.Code("b")
	assert.False(t, ok)
	assert.Equal(t, []string{"a"}, cat.Labels())
}
