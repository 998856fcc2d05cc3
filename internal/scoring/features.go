package scoring

import (
	"bytes"
	"encoding/json"
	"math"

	"golang-bias-heatmap/pkg/apperror"

	"github.com/spf13/cast"
)

const maxIndicatorKeyLength = 50

// PayloadToIndicator extracts the indicator key and value from an event payload.
// The payload must carry a string "key" and a "value" coercible to float64.
func PayloadToIndicator(payload []byte) (string, float64, error) {
	var fields map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return "", 0, apperror.Validation("payload is not a JSON object").WithError(err)
	}

	rawKey, ok := fields["key"]
	if !ok || rawKey == nil {
		return "", 0, apperror.Validation("payload is missing \"key\"")
	}
	key, ok := rawKey.(string)
	if !ok || key == "" {
		return "", 0, apperror.Validation("payload \"key\" must be a non-empty string")
	}
	if len(key) > maxIndicatorKeyLength {
		return "", 0, apperror.Validation("payload \"key\" exceeds %d characters", maxIndicatorKeyLength)
	}

	rawValue, ok := fields["value"]
	if !ok || rawValue == nil {
		return "", 0, apperror.Validation("payload is missing \"value\"")
	}
	value, err := cast.ToFloat64E(rawValue)
	if err != nil {
		return "", 0, apperror.Validation("payload \"value\" is not numeric").WithError(err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", 0, apperror.Validation("payload \"value\" must be finite")
	}

	return key, value, nil
}
