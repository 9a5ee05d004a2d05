package calculations

import (
	"prev-engine/internal/model"
	"prev-engine/internal/tables"
)

// CalculationHandler defines the contract for all calculation types.
// Validate rejects malformed input before anything is computed; Apply
// computes the result and may add warnings.
type CalculationHandler interface {
	Validate(t *tables.Tables, calc *model.Calculation) []model.CalculationMessage
	Apply(t *tables.Tables, calc *model.Calculation) (any, []model.CalculationMessage)
}
