package encoding

import (
	"price-predictor/internal/common/errors"
	"price-predictor/internal/common/validation"
	"price-predictor/internal/models"
)

// Encoder turns an OrderRequest into the model's FeatureVector.
type Encoder struct {
	vocab  Vocabulary
	schema validation.JSONSchema
}

func NewEncoder(vocab Vocabulary) *Encoder {
	return &Encoder{
		vocab:  vocab,
		schema: OrderSchema(),
	}
}

// OrderSchema describes the presence and type requirements of an order.
// Extra fields are tolerated and ignored.
func OrderSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: models.RequiredFields,
		Properties: map[string]validation.Property{
			models.FieldEventType:    {Type: "string", Description: "Event category label"},
			models.FieldProductName:  {Type: "string", Description: "Rented product label"},
			models.FieldSeasonPeriod: {Type: "string", Description: "Calendar bucket label"},
			models.FieldQuantity:     {Type: "numeric", Description: "Units rented"},
			models.FieldUnitPrice:    {Type: "numeric", Description: "Price per unit"},
			models.FieldDurationDays: {Type: "numeric", Description: "Rental length in days"},
			models.FieldMonth:        {Type: "numeric", Description: "Calendar month, 1-12"},
			models.FieldYear:         {Type: "numeric", Description: "Calendar year"},
		},
		AdditionalProperties: true,
	}
}

// Encode validates the order and assembles the feature vector in the fixed
// model order. Missing or mistyped fields fail with INVALID_FEATURE_VALUE
// (all offending fields reported together); labels outside the vocabulary
// fail with UNKNOWN_CATEGORY.
func (e *Encoder) Encode(order *models.OrderRequest) (models.FeatureVector, error) {
	var vec models.FeatureVector

	var fields map[string]interface{}
	if order != nil {
		fields = order.Fields
	}

	result := validation.ValidateInput(fields, e.schema)
	if !result.Valid {
		return vec, errors.NewInvalidFeatureValueError(result.Problems())
	}

	eventType, err := e.lookup(e.vocab.EventType, order)
	if err != nil {
		return vec, err
	}
	productName, err := e.lookup(e.vocab.ProductName, order)
	if err != nil {
		return vec, err
	}
	seasonPeriod, err := e.lookup(e.vocab.SeasonPeriod, order)
	if err != nil {
		return vec, err
	}

	vec[models.IdxEventType] = eventType
	vec[models.IdxProductName] = productName
	vec[models.IdxSeasonPeriod] = seasonPeriod

	for _, idx := range []int{models.IdxQuantity, models.IdxUnitPrice, models.IdxDurationDays, models.IdxMonth, models.IdxYear} {
		name := models.FeatureNames[idx]
		raw, _ := order.Get(name)
		f, err := validation.ToFloat(raw)
		if err != nil {
			return vec, errors.NewInvalidFeatureValueError(map[string]string{name: err.Error()})
		}
		vec[idx] = f
	}

	return vec, nil
}

func (e *Encoder) lookup(cat Category, order *models.OrderRequest) (float64, error) {
	raw, _ := order.Get(cat.Field())
	label, _ := raw.(string)
	code, ok := cat.Code(label)
	if !ok {
		return 0, errors.NewUnknownCategoryError(cat.Field(), label)
	}
	return float64(code), nil
}
