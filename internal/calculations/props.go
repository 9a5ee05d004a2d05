package calculations

import (
	"errors"

	json "github.com/goccy/go-json"

	"prev-engine/internal/calc"
	"prev-engine/internal/model"
)

const (
	CodeInvalidProperties = "INVALID_PROPERTIES"
	CodeInvalidInput      = "INVALID_INPUT"
)

func decodeProps(raw json.RawMessage, v any) []model.CalculationMessage {
	if len(raw) == 0 {
		return []model.CalculationMessage{model.Critical(CodeInvalidProperties, "properties are required")}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return []model.CalculationMessage{model.Critical(CodeInvalidProperties, "invalid properties: "+err.Error())}
	}
	return nil
}

// inputError turns a core validation failure into a CRITICAL message. The
// user-facing text is passed through untouched.
func inputError(err error) []model.CalculationMessage {
	var inv *calc.InvalidInputError
	if errors.As(err, &inv) {
		return []model.CalculationMessage{model.Critical(CodeInvalidInput, inv.Message)}
	}
	return []model.CalculationMessage{model.Critical(CodeInvalidInput, err.Error())}
}
