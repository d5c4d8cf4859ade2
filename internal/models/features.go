package models

// FeatureCount is the width of the model's input.
const FeatureCount = 8

// Positions within a FeatureVector. The regression artifact was fitted
// against exactly this order.
const (
	IdxEventType = iota
	IdxProductName
	IdxQuantity
	IdxUnitPrice
	IdxDurationDays
	IdxSeasonPeriod
	IdxMonth
	IdxYear
)

// FeatureNames gives the column name at each FeatureVector position.
var FeatureNames = [FeatureCount]string{
	IdxEventType:    FieldEventType,
	IdxProductName:  FieldProductName,
	IdxQuantity:     FieldQuantity,
	IdxUnitPrice:    FieldUnitPrice,
	IdxDurationDays: FieldDurationDays,
	IdxSeasonPeriod: FieldSeasonPeriod,
	IdxMonth:        FieldMonth,
	IdxYear:         FieldYear,
}

// FeatureVector is the model input.
type FeatureVector [FeatureCount]float64

// Slice returns a copy of the vector as a slice.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

// Prediction is the result of one pipeline run.
type Prediction struct {
	InvocationID string        `json:"invocationId"`
	Features     FeatureVector `json:"features"`
	Transformed  float64       `json:"transformed"`
	Price        float64       `json:"price"`
}
