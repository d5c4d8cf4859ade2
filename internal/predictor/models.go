// internal/predictor/models.go
package predictor

// Input is one invocation of the pipeline.
type Input struct {
	InvocationID string
	Payload      string
}

// Stage names used in logs and stage metrics.
const (
	StageDecode    = "decode"
	StageEncode    = "encode"
	StageInference = "inference"
	StageTransform = "transform"
)

const (
	stageOK    = "ok"
	stageError = "error"
)
