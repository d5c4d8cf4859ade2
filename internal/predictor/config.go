// internal/predictor/config.go
package predictor

import (
	"time"

	"price-predictor/internal/boxcox"
)

const ServiceName = "price-predictor"

type Config struct {
	// Lambda is the Box-Cox λ applied when inverting the model output.
	Lambda  float64
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Lambda:  boxcox.FittedLambda,
		Timeout: 10 * time.Second,
	}
}
