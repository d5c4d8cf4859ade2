package inference

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"price-predictor/internal/common/errors"
	"price-predictor/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

const ModelTypeLinearRegression = "linear_regression"

// Artifact is the on-disk form of an exported regression model.
type Artifact struct {
	ModelType       string           `json:"model_type"`
	FeatureNames    []string         `json:"feature_names,omitempty"`
	Coefficients    []float64        `json:"coefficients"`
	Intercept       float64          `json:"intercept"`
	TargetTransform *TargetTransform `json:"target_transform,omitempty"`
}

// TargetTransform records how the training target was transformed.
type TargetTransform struct {
	Name   string  `json:"name"`
	Lambda float64 `json:"lambda"`
}

// artifactSchema is the contract the export step writes against.
const artifactSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["model_type", "coefficients", "intercept"],
  "properties": {
    "model_type": {"type": "string", "enum": ["linear_regression"]},
    "feature_names": {
      "type": "array",
      "items": {"type": "string"},
      "minItems": 8,
      "maxItems": 8
    },
    "coefficients": {
      "type": "array",
      "items": {"type": "number"},
      "minItems": 8,
      "maxItems": 8
    },
    "intercept": {"type": "number"},
    "target_transform": {
      "type": "object",
      "required": ["name", "lambda"],
      "properties": {
        "name": {"type": "string", "enum": ["boxcox"]},
        "lambda": {"type": "number"}
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(artifactSchema)

// FileLoader reads a model artifact from disk on every Load call.
type FileLoader struct {
	Path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

// Load implements Loader.
func (l *FileLoader) Load() (Predictor, error) {
	return LoadModel(l.Path)
}

// LoadModel opens, validates and decodes the artifact at path. The file
// handle is released before returning on every path. Any failure is a
// MODEL_LOAD_FAILED error.
func LoadModel(path string) (*LinearModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewModelLoadError(path, err)
	}
	defer f.Close()

	return ReadModel(path, f)
}

// ReadModel decodes an artifact from r; name is used in error messages only.
func ReadModel(name string, r io.Reader) (*LinearModel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewModelLoadError(name, fmt.Errorf("read artifact: %w", err))
	}

	artifact, err := ParseArtifact(data)
	if err != nil {
		return nil, errors.NewModelLoadError(name, err)
	}

	m, err := artifact.Model()
	if err != nil {
		return nil, errors.NewModelLoadError(name, err)
	}
	return m, nil
}

// ParseArtifact validates data against the artifact schema and decodes it.
func ParseArtifact(data []byte) (*Artifact, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("artifact is not valid JSON: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("artifact schema validation failed: %s", strings.Join(errs, "; "))
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return &artifact, nil
}

// CheckFeatureOrder compares the artifact's declared column order with the
// encoder's. An artifact without feature names is accepted as is.
func (a *Artifact) CheckFeatureOrder() error {
	if len(a.FeatureNames) == 0 {
		return nil
	}
	if len(a.FeatureNames) != models.FeatureCount {
		return fmt.Errorf("artifact declares %d features, expected %d", len(a.FeatureNames), models.FeatureCount)
	}
	for i, name := range a.FeatureNames {
		if name != models.FeatureNames[i] {
			return fmt.Errorf("feature %d is %q in artifact, encoder produces %q", i, name, models.FeatureNames[i])
		}
	}
	return nil
}

// Model converts a parsed artifact into a LinearModel.
func (a *Artifact) Model() (*LinearModel, error) {
	if a.ModelType != ModelTypeLinearRegression {
		return nil, fmt.Errorf("unsupported model_type %q", a.ModelType)
	}
	if len(a.Coefficients) != models.FeatureCount {
		return nil, fmt.Errorf("expected %d coefficients, got %d", models.FeatureCount, len(a.Coefficients))
	}
	if err := a.CheckFeatureOrder(); err != nil {
		return nil, err
	}

	var coef [models.FeatureCount]float64
	copy(coef[:], a.Coefficients)

	m := NewLinearModel(coef, a.Intercept)
	if a.TargetTransform != nil {
		lambda := a.TargetTransform.Lambda
		m.lambda = &lambda
	}
	return m, nil
}
