// Package inference wraps the pre-fitted regression artifact behind a
// single capability: feature vector in, transformed prediction out.
package inference

import (
	"fmt"
	"math"

	"price-predictor/internal/common/errors"
	"price-predictor/internal/models"
)

// Predictor maps a feature vector to a prediction on the Box-Cox scale.
// Implementations must be deterministic for identical inputs.
type Predictor interface {
	Predict(vec models.FeatureVector) (float64, error)
}

// Loader produces a Predictor from persisted state.
type Loader interface {
	Load() (Predictor, error)
}

// LambdaDeclarer is implemented by predictors whose artifact records the
// Box-Cox λ of its target.
type LambdaDeclarer interface {
	DeclaredLambda() (float64, bool)
}

// LinearModel is an ordinary least squares model: intercept + Σ coef·x.
type LinearModel struct {
	coefficients [models.FeatureCount]float64
	intercept    float64
	lambda       *float64
}

// NewLinearModel builds a model from raw weights.
func NewLinearModel(coefficients [models.FeatureCount]float64, intercept float64) *LinearModel {
	return &LinearModel{coefficients: coefficients, intercept: intercept}
}

// Predict narrows every input to float32 before the dot product, matching
// the float32 design matrix the artifact was fitted and served with.
func (m *LinearModel) Predict(vec models.FeatureVector) (float64, error) {
	var dot float64
	for i, x := range vec {
		dot += m.coefficients[i] * float64(float32(x))
	}
	out := dot + m.intercept

	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, errors.NewUnexpectedError(fmt.Errorf("model produced non-finite output %v", out))
	}
	return out, nil
}

// DeclaredLambda returns the target transform λ recorded in the artifact, if any.
func (m *LinearModel) DeclaredLambda() (float64, bool) {
	if m.lambda == nil {
		return 0, false
	}
	return *m.lambda, true
}

// Coefficients returns a copy of the weights in feature order.
func (m *LinearModel) Coefficients() [models.FeatureCount]float64 {
	return m.coefficients
}

// Intercept returns the bias term.
func (m *LinearModel) Intercept() float64 {
	return m.intercept
}
