// Package boxcox implements the one-parameter Box-Cox power transform used on
// the price target during model fitting.
package boxcox

import (
	"fmt"
	"math"

	"price-predictor/internal/common/errors"
)

// FittedLambda is the λ estimated by the Box-Cox fit on training prices when
// the production regression artifact was trained. It is not re-estimated at
// runtime; an artifact retrained on new data needs this constant updated with it.
const FittedLambda = 0.1560355836754312

// Inverse maps a value on the transformed scale back to the original scale:
// (t·λ + 1)^(1/λ) for λ ≠ 0 and exp(t) for λ = 0. A non-positive base, a
// non-finite input or an overflowing result fails with INVERSE_TRANSFORM_FAILED.
func Inverse(transformed, lambda float64) (float64, error) {
	if math.IsNaN(transformed) || math.IsInf(transformed, 0) {
		return 0, errors.NewInverseTransformError(transformed, lambda, "transformed value is not finite")
	}
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		return 0, errors.NewInverseTransformError(transformed, lambda, "lambda is not finite")
	}

	var out float64
	if lambda == 0 {
		out = math.Exp(transformed)
	} else {
		base := transformed*lambda + 1
		if base <= 0 {
			return 0, errors.NewInverseTransformError(transformed, lambda,
				fmt.Sprintf("base transformed*lambda+1 = %v must be positive", base))
		}
		out = math.Exp(math.Log1p(transformed*lambda) / lambda)
	}

	if math.IsInf(out, 0) || math.IsNaN(out) {
		return 0, errors.NewInverseTransformError(transformed, lambda, "result overflows float64")
	}
	return out, nil
}

// Forward applies the Box-Cox transform: (y^λ − 1)/λ for λ ≠ 0 and ln(y) for
// λ = 0. It is defined for y > 0 only.
func Forward(y, lambda float64) (float64, error) {
	if !(y > 0) || math.IsInf(y, 0) {
		return 0, fmt.Errorf("box-cox forward transform undefined for y=%v", y)
	}
	if lambda == 0 {
		return math.Log(y), nil
	}
	return math.Expm1(lambda*math.Log(y)) / lambda, nil
}
