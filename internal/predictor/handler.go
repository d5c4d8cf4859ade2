// internal/predictor/handler.go
package predictor

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"price-predictor/internal/boxcox"
	"price-predictor/internal/common/errors"
	"price-predictor/internal/common/logger"
	"price-predictor/internal/encoding"
	"price-predictor/internal/inference"
	"price-predictor/internal/models"
)

// StageRecorder receives the timing of every pipeline stage.
type StageRecorder interface {
	RecordStage(ctx context.Context, stage string, duration time.Duration, outcome string)
}

// ResultRecorder receives every successful prediction.
type ResultRecorder interface {
	RecordSuccess(price float64, elapsed time.Duration)
}

// Handler runs the decode, encode, inference and inverse transform stages
// for one order. Recorders may be nil.
type Handler struct {
	config  *Config
	encoder *encoding.Encoder
	loader  inference.Loader
	stages  StageRecorder
	results ResultRecorder
	logger  logger.Logger
}

func NewHandler(config *Config, encoder *encoding.Encoder, loader inference.Loader, stages StageRecorder, results ResultRecorder, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		encoder: encoder,
		loader:  loader,
		stages:  stages,
		results: results,
		logger:  log.WithFields(map[string]interface{}{"component": ServiceName}),
	}
}

// Execute produces a price for input. Every returned error is a
// *errors.StandardError; a panic in any stage surfaces as UNEXPECTED_ERROR.
func (h *Handler) Execute(ctx context.Context, input *Input) (prediction *models.Prediction, err error) {
	defer func() {
		if r := recover(); r != nil {
			prediction = nil
			err = errors.NewUnexpectedError(fmt.Errorf("panic during prediction: %v", r))
		}
	}()

	if input == nil {
		return nil, errors.NewMalformedInputError(fmt.Errorf("no payload supplied"))
	}

	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*models.Prediction, error) {
	log := h.logger.WithFields(map[string]interface{}{"invocationId": input.InvocationID})
	start := time.Now()

	log.Debug("raw input received", map[string]interface{}{"payload": input.Payload})

	var order *models.OrderRequest
	err := h.runStage(ctx, StageDecode, func() (err error) {
		order, err = DecodeOrder(input.Payload)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Debug("payload decoded", map[string]interface{}{"fieldCount": len(order.Fields)})

	var vec models.FeatureVector
	err = h.runStage(ctx, StageEncode, func() (err error) {
		vec, err = h.encoder.Encode(order)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Debug("features encoded", map[string]interface{}{"features": vec.Slice()})

	var transformed float64
	err = h.runStage(ctx, StageInference, func() (err error) {
		transformed, err = h.predict(log, vec)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Debug("model evaluated", map[string]interface{}{"transformed": transformed})

	var price float64
	err = h.runStage(ctx, StageTransform, func() (err error) {
		price, err = boxcox.Inverse(transformed, h.config.Lambda)
		return err
	})
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	if h.results != nil {
		h.results.RecordSuccess(price, elapsed)
	}

	log.Info("prediction complete", map[string]interface{}{
		"price":      price,
		"durationMs": elapsed.Milliseconds(),
	})

	return &models.Prediction{
		InvocationID: input.InvocationID,
		Features:     vec,
		Transformed:  transformed,
		Price:        price,
	}, nil
}

// predict loads the artifact and evaluates it once. Loader failures that are
// not already classified are reported as MODEL_LOAD_FAILED.
func (h *Handler) predict(log logger.Logger, vec models.FeatureVector) (float64, error) {
	p, err := h.loader.Load()
	if err != nil {
		var stdErr *errors.StandardError
		if !stderrors.As(err, &stdErr) {
			return 0, errors.NewModelLoadError("unknown", err)
		}
		return 0, err
	}
	log.Debug("model loaded", nil)

	if d, ok := p.(inference.LambdaDeclarer); ok {
		if declared, ok := d.DeclaredLambda(); ok && declared != h.config.Lambda {
			log.Warn("artifact declares a different box-cox lambda", map[string]interface{}{
				"declaredLambda": declared,
				"appliedLambda":  h.config.Lambda,
			})
		}
	}

	return p.Predict(vec)
}

// runStage times fn and records its outcome. A panic in fn is recorded as a
// failed stage and returned as UNEXPECTED_ERROR.
func (h *Handler) runStage(ctx context.Context, stage string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return errors.NewUnexpectedError(fmt.Errorf("%s stage not started: %w", stage, err))
	}

	start := time.Now()
	err := callStage(stage, fn)

	outcome := stageOK
	if err != nil {
		outcome = stageError
		err = errors.AsStandardError(err)
	}
	if h.stages != nil {
		h.stages.RecordStage(ctx, stage, time.Since(start), outcome)
	}
	return err
}

func callStage(stage string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewUnexpectedError(fmt.Errorf("panic in %s stage: %v", stage, r))
		}
	}()
	return fn()
}
