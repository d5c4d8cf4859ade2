// internal/predictor/decoder.go
package predictor

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"price-predictor/internal/common/errors"
	"price-predictor/internal/models"
)

// DecodeOrder parses the single command-line payload into an order. The
// payload must be exactly one JSON object. Numbers are kept as json.Number so
// the encoder decides how to coerce them.
func DecodeOrder(raw string) (*models.OrderRequest, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewMalformedInputError(fmt.Errorf("payload is empty"))
		}
		return nil, errors.NewMalformedInputError(err)
	}
	if fields == nil {
		return nil, errors.NewMalformedInputError(fmt.Errorf("payload must be a JSON object, got null"))
	}

	if _, err := dec.Token(); !stderrors.Is(err, io.EOF) {
		return nil, errors.NewMalformedInputError(fmt.Errorf("unexpected data after JSON object"))
	}

	return &models.OrderRequest{Fields: fields}, nil
}
